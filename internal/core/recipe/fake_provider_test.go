package recipe

import (
	"context"
	"sync"
	"sync/atomic"

	"recipe-suggester/internal/core/ai/provider"
)

// fakeProvider 記錄呼叫次數的假提供者
type fakeProvider struct {
	mu      sync.Mutex
	calls   atomic.Int64
	closed  atomic.Int64
	resp    *provider.Response
	err     error
	prompts []string
	block   chan struct{}
}

func textResponse(text string) *provider.Response {
	return &provider.Response{Candidates: []provider.Candidate{{Parts: []string{text}, FinishReason: "STOP"}}}
}

func (f *fakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeProvider) GetModel() string { return "fake-model" }

func (f *fakeProvider) Close() error {
	f.closed.Add(1)
	return nil
}

func (f *fakeProvider) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}
