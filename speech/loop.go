package speech

import (
	"context"

	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/logging"
)

// LoopOptions configure a capture Loop.
type LoopOptions struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Loop runs continuous voice capture: it blocks on the listener for one
// utterance at a time and hands each transcription to the handler.
//
// Contract:
//   - Cancellation of the Run context exits the loop between utterances,
//     never mid-handler
//   - Failed or empty captures are skipped, not fatal
//   - A Loop instance is single-use per Run call; re-enabling voice input
//     after cancellation means calling Run again with a fresh context
type Loop struct {
	listener core.Listener
	handler  func(ctx context.Context, text string)
	logger   logging.Logger
}

// NewLoop constructs a capture loop feeding transcriptions into handler.
func NewLoop(listener core.Listener, handler func(ctx context.Context, text string), optFns ...func(o *LoopOptions)) *Loop {
	opts := LoopOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Loop{listener: listener, handler: handler, logger: opts.Logger}
}

// Run blocks until ctx is cancelled, capturing utterances in sequence.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("Voice capture loop started")
	defer l.logger.Info("Voice capture loop stopped")
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		text, ok := l.listener.Listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if !ok {
			l.logger.Debug("Capture yielded no transcription")
			continue
		}
		l.handler(ctx, text)
	}
}
