package recipe

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrNoIngredients 正規化後沒有任何食材
var ErrNoIngredients = errors.New("no valid ingredients")

var ingredientSeparator = regexp.MustCompile(`[,\n]+`)

// IngredientSet 正規化後的食材序列：小寫、去空白、排序，不做去重
type IngredientSet []string

// SplitIngredients 依逗號與換行切分原始輸入，保留輸入順序
func SplitIngredients(raw string) []string {
	var items []string
	for _, segment := range ingredientSeparator.Split(raw, -1) {
		if item := normalizeItem(segment); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// NewIngredientSet 由食材清單建立排序後的集合
func NewIngredientSet(items []string) IngredientSet {
	set := make(IngredientSet, 0, len(items))
	for _, item := range items {
		if item = normalizeItem(item); item != "" {
			set = append(set, item)
		}
	}
	sort.Strings(set)
	return set
}

// NormalizeIngredients 將原始文字轉成食材集合，結果為空時回傳 ErrNoIngredients
func NormalizeIngredients(raw string) (IngredientSet, error) {
	set := NewIngredientSet(SplitIngredients(raw))
	if set.Empty() {
		return nil, ErrNoIngredients
	}
	return set, nil
}

// Empty 是否沒有任何食材
func (s IngredientSet) Empty() bool {
	return len(s) == 0
}

// Join 以 ", " 串接，用於提示詞
func (s IngredientSet) Join() string {
	return strings.Join(s, ", ")
}

func normalizeItem(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
