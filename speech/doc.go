// Package speech houses concrete implementations of the core.Speaker and
// core.Listener capabilities plus the cancellable continuous-capture Loop.
//
// The capability contract is deliberately thin: Speak blocks, logs and
// swallows failures; Listen blocks for one utterance and reports absence
// instead of raising. Hosted backends live in sub-packages (gcp for
// speech-to-text, say for text-to-speech) so the core never links audio
// SDKs it does not use.
package speech
