package speech

import (
	"context"

	"github.com/hupe1980/tutormesh/core"
)

// NoOpSpeaker discards all speech output. Used when voice is disabled or the
// synthesis capability is unavailable.
type NoOpSpeaker struct{}

var _ core.Speaker = NoOpSpeaker{}

// Speak implements core.Speaker.
func (NoOpSpeaker) Speak(context.Context, string) {}

// NoOpListener never hears anything. Used when voice input is disabled.
type NoOpListener struct{}

var _ core.Listener = NoOpListener{}

// Listen implements core.Listener.
func (NoOpListener) Listen(context.Context) (string, bool) { return "", false }
