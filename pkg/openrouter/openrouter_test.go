package openrouter

import (
	"context"
	"testing"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"key only", Config{APIKey: "sk-test"}, false},
		{"model only", Config{Model: "qwen/qwen3-32b"}, false},
		{"blank key", Config{APIKey: "   ", Model: "qwen/qwen3-32b"}, false},
		{"complete", Config{APIKey: "sk-test", Model: "qwen/qwen3-32b"}, true},
	}
	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if client := NewClient(Config{}); client != nil {
		t.Fatal("expected nil client without an api key")
	}
	if client := NewClient(Config{APIKey: "   "}); client != nil {
		t.Fatal("expected nil client for a blank api key")
	}

	client := NewClient(Config{
		APIKey:   "sk-test",
		BaseURL:  "https://openrouter.ai/api/v1/",
		SiteURL:  "https://iquote.example",
		SiteName: "iquote",
	})
	if client == nil {
		t.Fatal("expected a client")
	}
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	t.Parallel()

	if _, err := (Config{}).New(context.Background()); err == nil {
		t.Fatal("expected error for incomplete config")
	}
}
