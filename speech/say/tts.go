// Package say implements core.Speaker on the Google Cloud Text-to-Speech
// API. Playback of the synthesized audio is delegated to a Sink so the
// speaker stays free of platform audio dependencies.
package say

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/logging"
)

// Sink plays one clip of LINEAR16 PCM audio, blocking until done.
type Sink interface {
	Play(ctx context.Context, audio []byte) error
}

// Options configure the synthesizer.
type Options struct {
	LanguageCode string
	VoiceName    string
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Synthesizer speaks text by synthesizing it remotely and handing the audio
// to the sink. All failures are logged and swallowed, per the Speaker
// contract: voice output is best-effort and never fails a tutoring operation.
type Synthesizer struct {
	client *texttospeech.Client
	sink   Sink
	opts   Options
}

var _ core.Speaker = (*Synthesizer)(nil)

// NewSynthesizer creates a synthesizer around a playback sink. Credentials
// are resolved the standard Google Cloud way (environment / ADC).
func NewSynthesizer(ctx context.Context, sink Sink, optFns ...func(o *Options)) (*Synthesizer, error) {
	opts := Options{
		LanguageCode: "en-US",
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("texttospeech client: %w", err)
	}
	return &Synthesizer{client: client, sink: sink, opts: opts}, nil
}

// Speak implements core.Speaker.
func (s *Synthesizer) Speak(ctx context.Context, text string) {
	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.opts.LanguageCode,
			Name:         s.opts.VoiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
		},
	})
	if err != nil {
		s.opts.Logger.Warn("Speech synthesis failed", "error", err)
		return
	}
	if err := s.sink.Play(ctx, resp.GetAudioContent()); err != nil {
		s.opts.Logger.Warn("Audio playback failed", "error", err)
	}
}

// Close releases the underlying client.
func (s *Synthesizer) Close() error {
	return s.client.Close()
}
