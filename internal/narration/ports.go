// Package narration speaks instructions and rewards for the drill on
// screen. Every utterance belongs to a scope; beginning a new scope cancels
// whatever the previous one was still saying.
package narration

import "context"

// Speaker turns text into speech. Speak returns when the text has been
// spoken or ctx is cancelled, whichever comes first.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// EffectPlayer plays short sound effects. Play must not block.
type EffectPlayer interface {
	Play(ctx context.Context, name string)
}

// Effect names.
const (
	EffectError   = "error_sound"
	EffectSuccess = "success_fest"
)
