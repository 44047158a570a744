// Package gcp implements core.Listener on the Google Cloud Speech-to-Text
// API. Audio capture itself is delegated to an AudioSource so the transcriber
// stays free of platform audio dependencies.
package gcp

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/logging"
)

// AudioSource captures one utterance of LINEAR16 PCM audio. Implementations
// wrap a microphone or any other audio feed; Capture blocks until the
// utterance completes or ctx is cancelled.
type AudioSource interface {
	Capture(ctx context.Context) ([]byte, error)
}

// Options configure the recognizer.
type Options struct {
	LanguageCode    string
	SampleRateHertz int32
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Recognizer transcribes single utterances via the Cloud Speech Recognize
// RPC. Failures and empty results are logged and reported as absence, never
// returned as errors, per the Listener contract.
type Recognizer struct {
	client *speech.Client
	source AudioSource
	opts   Options
}

var _ core.Listener = (*Recognizer)(nil)

// NewRecognizer creates a recognizer around an audio source. Credentials are
// resolved the standard Google Cloud way (environment / ADC).
func NewRecognizer(ctx context.Context, source AudioSource, optFns ...func(o *Options)) (*Recognizer, error) {
	opts := Options{
		LanguageCode:    "en-US",
		SampleRateHertz: 16000,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &Recognizer{client: client, source: source, opts: opts}, nil
}

// Listen implements core.Listener: capture one utterance, transcribe it and
// return the top alternative.
func (r *Recognizer) Listen(ctx context.Context) (string, bool) {
	audio, err := r.source.Capture(ctx)
	if err != nil {
		r.opts.Logger.Warn("Audio capture failed", "error", err)
		return "", false
	}
	if len(audio) == 0 {
		return "", false
	}

	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: r.opts.SampleRateHertz,
			LanguageCode:    r.opts.LanguageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		r.opts.Logger.Warn("Transcription failed", "error", err)
		return "", false
	}
	for _, result := range resp.GetResults() {
		for _, alt := range result.GetAlternatives() {
			if alt.GetTranscript() != "" {
				return alt.GetTranscript(), true
			}
		}
	}
	return "", false
}

// Close releases the underlying client.
func (r *Recognizer) Close() error {
	return r.client.Close()
}
