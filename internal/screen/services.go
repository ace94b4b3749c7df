package screen

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/narration"
	"github.com/abhisek/alefba/internal/session"
	"github.com/abhisek/alefba/internal/store"
)

// Services are the long-lived dependencies screens are built from.
type Services struct {
	Items    store.ItemRepo
	Events   store.EventRepo
	Planner  *session.Planner
	Engine   *session.Engine
	Captions *narration.Captions
	Log      logrus.FieldLogger
	Now      func() time.Time
}

// Clock returns Now, defaulting to time.Now.
func (s *Services) Clock() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
