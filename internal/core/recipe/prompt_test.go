package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilder_Build(t *testing.T) {
	b := NewPromptBuilder(DefaultTemplate, 0)
	assert.Equal(t, DefaultMaxPromptChars, b.MaxChars())
	assert.Equal(t, "recipe-markdown-v1", b.TemplateID())

	prompt, fail := b.Build(IngredientSet{"cheese", "tomato"})
	require.Nil(t, fail)
	assert.Contains(t, prompt, "**cheese, tomato**")
	assert.Contains(t, prompt, "## Recipe Name")
	assert.False(t, strings.HasPrefix(prompt, "\n"))
}

func TestPromptBuilder_TooLarge(t *testing.T) {
	tpl := PromptTemplate{ID: "tiny", Text: "Ingredients: %s"}
	b := NewPromptBuilder(tpl, 20)

	_, fail := b.Build(IngredientSet{"a"})
	assert.Nil(t, fail)

	_, fail = b.Build(IngredientSet{strings.Repeat("x", 30)})
	require.NotNil(t, fail)
	assert.False(t, fail.OK)
	assert.Equal(t, PromptTooLarge, fail.Kind)
	// "Ingredients: " 13 字元 + 30 字元 = 43，約 10 tokens
	assert.Contains(t, fail.Message, "approx. 10 tokens")
}

func TestPromptBuilder_CountsCharacters(t *testing.T) {
	tpl := PromptTemplate{ID: "tiny", Text: "%s"}
	b := NewPromptBuilder(tpl, 4)

	// 4 個中文字元超過 4 位元組但不超過 4 字元
	_, fail := b.Build(IngredientSet{"番茄起司"})
	assert.Nil(t, fail)
}
