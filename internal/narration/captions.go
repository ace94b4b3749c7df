package narration

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Caption is one line of speech or one effect, as shown on screen.
type Caption struct {
	Text   string
	Effect string
}

// Captions stands in for a speech engine in the terminal: spoken text
// becomes an on-screen caption that stays up for roughly the time it would
// take to say it.
type Captions struct {
	ch      chan Caption
	perRune time.Duration
	min     time.Duration
}

// NewCaptions creates a caption stream.
func NewCaptions() *Captions {
	return &Captions{
		ch:      make(chan Caption, 16),
		perRune: 60 * time.Millisecond,
		min:     800 * time.Millisecond,
	}
}

// C delivers captions to the UI.
func (c *Captions) C() <-chan Caption {
	return c.ch
}

// Speak shows text and holds it for its reading time.
func (c *Captions) Speak(ctx context.Context, text string) error {
	c.send(Caption{Text: text})
	d := time.Duration(utf8.RuneCountInString(text)) * c.perRune
	if d < c.min {
		d = c.min
	}
	if !sleep(ctx, d) {
		return ctx.Err()
	}
	return nil
}

// Play shows the effect name.
func (c *Captions) Play(_ context.Context, name string) {
	c.send(Caption{Effect: name})
}

// send never blocks; captions nobody is reading are stale anyway.
func (c *Captions) send(msg Caption) {
	select {
	case c.ch <- msg:
	default:
	}
}

// LogSpeaker writes speech and effects to a logger, for headless runs.
type LogSpeaker struct {
	Log logrus.FieldLogger
}

func (l LogSpeaker) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.Log.WithField("text", text).Info("say")
	return nil
}

func (l LogSpeaker) Play(_ context.Context, name string) {
	l.Log.WithField("effect", name).Debug("play")
}
