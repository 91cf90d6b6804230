package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/calebhart/seedpost/internal/llm"
)

// ResponseFunc produces the raw text for the n-th call of a task (0-based).
type ResponseFunc func(n int, req llm.GenerateRequest) (string, error)

// FakeClient is a scriptable in-memory llm.Client. Unscripted tasks return
// well-formed default output so pipeline tests run without a provider.
type FakeClient struct {
	mu      sync.Mutex
	calls   []llm.GenerateRequest
	scripts map[llm.TaskType]ResponseFunc
}

// NewFakeClient returns a fake that answers every task with valid JSON.
func NewFakeClient() *FakeClient {
	return &FakeClient{scripts: make(map[llm.TaskType]ResponseFunc)}
}

// Script installs a response function for a task type.
func (f *FakeClient) Script(task llm.TaskType, fn ResponseFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[task] = fn
}

// Fail makes every call for a task return err.
func (f *FakeClient) Fail(task llm.TaskType, err error) {
	f.Script(task, func(int, llm.GenerateRequest) (string, error) {
		return "", err
	})
}

func (f *FakeClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	n := 0
	for _, c := range f.calls {
		if c.Task == req.Task {
			n++
		}
	}
	f.calls = append(f.calls, req)
	fn := f.scripts[req.Task]
	f.mu.Unlock()

	if fn == nil {
		fn = defaultResponse
	}
	text, err := fn(n, req)
	if err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: text, Model: "fake"}, nil
}

func (f *FakeClient) Available(context.Context) bool { return true }

// Calls returns the total number of Generate invocations.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CallsFor counts Generate invocations for one task type.
func (f *FakeClient) CallsFor(task llm.TaskType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Task == task {
			n++
		}
	}
	return n
}

// Requests returns a copy of every request seen so far.
func (f *FakeClient) Requests() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.GenerateRequest(nil), f.calls...)
}

func defaultResponse(n int, req llm.GenerateRequest) (string, error) {
	switch req.Task {
	case llm.TaskPost:
		return fmt.Sprintf(`{"title": "Looking for advice on workflow tooling (take %d)",
			"body": "I have been wrestling with our internal process for a few months now and would love to hear what has worked for other teams. We tried a handful of tools but nothing stuck."}`, n+1), nil
	case llm.TaskComment:
		return fmt.Sprintf(`{"body": "We ran into the same thing last quarter. What finally worked was writing down the process before picking any tool (attempt %d).", "delay_minutes": %d}`, n+1, 30+(n*17)%300), nil
	default:
		return "", fmt.Errorf("unknown task %q", req.Task)
	}
}
