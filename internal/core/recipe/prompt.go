package recipe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPromptChars 提示詞長度上限，約 3000 tokens
const DefaultMaxPromptChars = 12000

// PromptTemplate 提示詞模板，Text 內含一個 %s 放置食材
type PromptTemplate struct {
	ID   string
	Text string
}

// DefaultTemplate Markdown 食譜推薦模板
var DefaultTemplate = PromptTemplate{
	ID: "recipe-markdown-v1",
	Text: `
You are a creative culinary assistant specializing in simple, tasty recipes.
Based *primarily* on these ingredients: **%s**

Suggest 2-3 diverse recipes. Assume common pantry staples like salt, pepper, cooking oil, basic spices (like paprika, garlic powder), sugar, flour, and water are available.

Format the output STRICTLY using Markdown:
- Use ` + "`## Recipe Name`" + ` for each recipe title.
- Use a bulleted list (` + "`* Ingredient`" + `) for **Required Ingredients**.
- Use a numbered list (` + "`1. Step`" + `) for **Instructions**.
- Keep instructions concise and easy to follow.
- If no reasonable recipe can be made, clearly state that instead of making something unrelated. e.g., "Sorry, it's hard to make a full meal with just mustard and pickles!"
- Do not add any conversational text before the first recipe or after the last one.
`,
}

// PromptBuilder 渲染提示詞並檢查長度
type PromptBuilder struct {
	template PromptTemplate
	maxChars int
}

// NewPromptBuilder 創建提示詞建構器，maxChars <= 0 時使用預設值
func NewPromptBuilder(template PromptTemplate, maxChars int) *PromptBuilder {
	if maxChars <= 0 {
		maxChars = DefaultMaxPromptChars
	}
	return &PromptBuilder{template: template, maxChars: maxChars}
}

// TemplateID 模板識別碼
func (b *PromptBuilder) TemplateID() string {
	return b.template.ID
}

// MaxChars 長度上限
func (b *PromptBuilder) MaxChars() int {
	return b.maxChars
}

// Build 渲染提示詞；字元數超過上限時回傳 PromptTooLarge 結果，token 以字元數/4 估算
func (b *PromptBuilder) Build(set IngredientSet) (string, *Result) {
	prompt := fmt.Sprintf(b.template.Text, set.Join())
	if n := utf8.RuneCountInString(prompt); n > b.maxChars {
		res := Fail(PromptTooLarge, fmt.Sprintf(
			"Error: Input is too long (approx. %d tokens). Please reduce the number of ingredients.", n/4))
		return "", &res
	}
	return strings.TrimSpace(prompt), nil
}
