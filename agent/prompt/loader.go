package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/architect.txt
var architectRaw string

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Architect string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings. Safe to call
// concurrently; the embed is compile-time and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Architect: strings.TrimSpace(architectRaw),
	}
}
