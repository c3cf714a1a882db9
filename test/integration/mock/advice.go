package mock

import (
	"context"
	"sync"
)

// Advice stands in for the language model behind the advice endpoint.
type Advice struct {
	mu        sync.Mutex
	answer    string
	err       error
	available bool
	prompts   []string
}

func NewAdvice() *Advice {
	return &Advice{available: true}
}

func (a *Advice) GenerateAdvice(_ context.Context, prompt string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prompts = append(a.prompts, prompt)
	if a.err != nil {
		return "", a.err
	}
	return a.answer, nil
}

func (a *Advice) IsAvailable() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.available
}

func (a *Advice) SetAnswer(answer string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.answer = answer
	a.err = nil
}

func (a *Advice) SetError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

func (a *Advice) SetAvailable(available bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.available = available
}

func (a *Advice) Prompts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.prompts...)
}

func (a *Advice) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.answer = ""
	a.err = nil
	a.available = true
	a.prompts = nil
}
