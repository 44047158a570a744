package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedListener replays a fixed sequence of captures and then cancels the
// loop context so Run returns.
type scriptedListener struct {
	captures []struct {
		text string
		ok   bool
	}
	next   int
	cancel context.CancelFunc
}

func (l *scriptedListener) Listen(context.Context) (string, bool) {
	if l.next >= len(l.captures) {
		l.cancel()
		return "", false
	}
	c := l.captures[l.next]
	l.next++
	return c.text, c.ok
}

func TestLoop_HandlesUtterancesAndSkipsFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	listener := &scriptedListener{
		captures: []struct {
			text string
			ok   bool
		}{
			{"what is force?", true},
			{"", false},
			{"what is energy?", true},
		},
		cancel: cancel,
	}

	var handled []string
	loop := NewLoop(listener, func(_ context.Context, text string) {
		handled = append(handled, text)
	})
	loop.Run(ctx)

	assert.Equal(t, []string{"what is force?", "what is energy?"}, handled)
}

func TestLoop_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	loop := NewLoop(NoOpListener{}, func(context.Context, string) { called = true })
	loop.Run(ctx)

	assert.False(t, called, "handler must not run after cancellation")
}

func TestNoOpAdapters(t *testing.T) {
	ctx := context.Background()
	NoOpSpeaker{}.Speak(ctx, "hello")
	text, ok := NoOpListener{}.Listen(ctx)
	assert.False(t, ok)
	assert.Empty(t, text)
}
