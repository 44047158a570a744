// Package config loads process-start configuration from the environment,
// reading a .env file first when one is present. The generative credential is
// opaque to the core beyond present or absent.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything TutorMesh reads at process start.
type Config struct {
	// Provider selects the generation backend: "openai" or "anthropic".
	Provider string
	// OpenAIKey / AnthropicKey are the provider credentials.
	OpenAIKey    string
	AnthropicKey string
	// ProfileDBPath is the profile store database file.
	ProfileDBPath string
	// KnowledgeDBPath is the resource catalog database file, independent of
	// the profile store.
	KnowledgeDBPath string
	// VoiceEnabled toggles the speech capabilities.
	VoiceEnabled bool
	// SpeechLanguage is the BCP-47 language code for speech I/O.
	SpeechLanguage string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Provider:        getenv("TUTORMESH_PROVIDER", "openai"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		ProfileDBPath:   getenv("TUTORMESH_PROFILE_DB", "user_data.db"),
		KnowledgeDBPath: getenv("TUTORMESH_KNOWLEDGE_DB", "knowledge_base.db"),
		VoiceEnabled:    os.Getenv("TUTORMESH_VOICE") == "1",
		SpeechLanguage:  getenv("TUTORMESH_SPEECH_LANGUAGE", "en-US"),
	}
}

// HasCredential reports whether a credential for the selected provider is present.
func (c Config) HasCredential() bool {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicKey != ""
	default:
		return c.OpenAIKey != ""
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
