package prompts

import (
	"fmt"
	"sync"
)

// Prompt names.
const (
	PromptAgentSystem = "agent_system"
	PromptSummarize   = "summarize"
)

// defaultPrompts contains the embedded default prompt templates.
var defaultPrompts = map[string]string{
	PromptAgentSystem: `You are a helpful AI assistant with access to a knowledge base.

Answer the user's questions using the reference material provided in the conversation.
When the reference material does not cover the question, say so instead of guessing.
Be concise and direct.`,

	PromptSummarize: `Condense the following conversation into a short summary that preserves
the facts, decisions, and open questions needed to continue the conversation later.

Previous summary (may be empty):
%s

Conversation:
%s

Summary:`,
}

// Store holds prompt templates with in-memory overrides on top of
// embedded defaults. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]string
}

// NewStore creates a prompt store backed by the embedded defaults.
func NewStore() *Store {
	return &Store{
		overrides: make(map[string]string),
	}
}

// Get returns the prompt template for the given name. Overrides win over
// the embedded defaults.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	prompt, ok := s.overrides[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	if prompt, ok := defaultPrompts[name]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

// Set installs an override for the given prompt name.
func (s *Store) Set(name, prompt string) {
	s.mu.Lock()
	s.overrides[name] = prompt
	s.mu.Unlock()
}

// Invalidate removes the override for one prompt name, restoring its
// embedded default.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	delete(s.overrides, name)
	s.mu.Unlock()
}

// Clear removes all overrides, restoring the embedded defaults.
func (s *Store) Clear() {
	s.mu.Lock()
	s.overrides = make(map[string]string)
	s.mu.Unlock()
}
