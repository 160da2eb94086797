package recipe

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"recipe-suggester/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamError struct{ code int }

func (e *upstreamError) Error() string { return fmt.Sprintf("upstream %d", e.code) }

func TestClient_Success(t *testing.T) {
	p := &fakeProvider{resp: textResponse("\n  ## Caprese\n")}
	c := NewClient(p, nil, time.Second)

	res := c.Suggest(context.Background(), "prompt")
	require.True(t, res.OK)
	assert.Equal(t, "## Caprese", res.Text)
	assert.Equal(t, "ok", res.Outcome())
	assert.Equal(t, "fake-model", c.Model())
}

func TestClient_Uninitialized(t *testing.T) {
	p := &fakeProvider{resp: textResponse("never")}
	c := NewClient(p, errors.New("missing credentials"), time.Second)

	assert.False(t, c.Available())
	assert.Empty(t, c.Model())
	for i := 0; i < 3; i++ {
		res := c.Suggest(context.Background(), "prompt")
		assert.False(t, res.OK)
		assert.Equal(t, ServiceUnavailable, res.Kind)
		assert.Equal(t, msgUnavailable, res.Message)
	}
	assert.Equal(t, int64(0), p.calls.Load())
}

func TestClient_NilProvider(t *testing.T) {
	c := NewClient(nil, nil, 0)
	assert.False(t, c.Available())
	assert.Error(t, c.InitError())
	assert.Equal(t, ServiceUnavailable, c.Suggest(context.Background(), "x").Kind)
}

func TestClient_Close(t *testing.T) {
	p := &fakeProvider{}
	c := NewClient(p, nil, time.Second)
	require.NoError(t, c.Close())
	assert.Equal(t, int64(1), p.closed.Load())

	assert.NoError(t, NewClient(nil, errors.New("missing credentials"), 0).Close())
}

func TestClient_ProviderError(t *testing.T) {
	p := &fakeProvider{err: fmt.Errorf("failed to send request: %w", &upstreamError{code: 500})}
	c := NewClient(p, nil, time.Second)

	res := c.Suggest(context.Background(), "prompt")
	assert.Equal(t, ServiceUnavailable, res.Kind)
	assert.Contains(t, res.Message, "(recipe.upstreamError)")
}

func TestClient_Timeout(t *testing.T) {
	p := &fakeProvider{block: make(chan struct{})}
	c := NewClient(p, nil, 20*time.Millisecond)

	res := c.Suggest(context.Background(), "prompt")
	assert.Equal(t, ServiceUnavailable, res.Kind)
	assert.Contains(t, res.Message, "DeadlineExceeded")
}

func TestClient_SafetyBlocked(t *testing.T) {
	p := &fakeProvider{resp: &provider.Response{BlockReason: "HARM"}}
	c := NewClient(p, nil, time.Second)

	res := c.Suggest(context.Background(), "prompt")
	assert.Equal(t, SafetyBlocked, res.Kind)
	assert.Contains(t, res.Message, "HARM")
}

func TestClient_SafetyBlockedUnknownReason(t *testing.T) {
	c := NewClient(&fakeProvider{resp: &provider.Response{}}, nil, time.Second)
	res := c.Suggest(context.Background(), "prompt")
	assert.Equal(t, SafetyBlocked, res.Kind)
	assert.Contains(t, res.Message, "Reason: Unknown")

	c = NewClient(&fakeProvider{}, nil, time.Second)
	assert.Equal(t, SafetyBlocked, c.Suggest(context.Background(), "prompt").Kind)
}

func TestClient_EmptyResponse(t *testing.T) {
	p := &fakeProvider{resp: &provider.Response{Candidates: []provider.Candidate{{FinishReason: "MAX_TOKENS"}}}}
	c := NewClient(p, nil, time.Second)

	res := c.Suggest(context.Background(), "prompt")
	assert.Equal(t, EmptyResponse, res.Kind)
	assert.Equal(t, msgEmptyResponse, res.Message)
}

func TestErrorTypeName(t *testing.T) {
	assert.Equal(t, "errors.errorString", errorTypeName(errors.New("x")))
	assert.Equal(t, "recipe.upstreamError", errorTypeName(fmt.Errorf("a: %w", fmt.Errorf("b: %w", &upstreamError{}))))
	assert.Equal(t, "Canceled", errorTypeName(fmt.Errorf("x: %w", context.Canceled)))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "safety_blocked", SafetyBlocked.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
	assert.True(t, ServiceUnavailable.Retryable())
	assert.False(t, SafetyBlocked.Retryable())
	assert.Equal(t, "PROMPT_TOO_LARGE", PromptTooLarge.Code())
}
