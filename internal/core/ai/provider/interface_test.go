package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponse_Text(t *testing.T) {
	resp := &Response{Candidates: []Candidate{{Parts: []string{"## Pasta", "\n1. Boil"}}}}
	assert.True(t, resp.HasParts())
	assert.Equal(t, "## Pasta\n1. Boil", resp.Text())
}

func TestResponse_Empty(t *testing.T) {
	assert.False(t, (&Response{}).HasParts())
	assert.Equal(t, "", (&Response{}).Text())
	assert.False(t, (&Response{Candidates: []Candidate{{FinishReason: "SAFETY"}}}).HasParts())
}
