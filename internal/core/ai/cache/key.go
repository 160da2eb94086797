package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// keySeparator 食材之間的分隔符，不會出現在正常輸入中
const keySeparator = "\x1f"

// Key 快取鍵：排序後的食材序列加上模板識別碼，可直接比較
type Key struct {
	Ingredients string
	Template    string
}

// NewKey 由食材與模板識別碼生成快取鍵，食材順序不影響結果
func NewKey(ingredients []string, templateID string) Key {
	sorted := make([]string, len(ingredients))
	copy(sorted, ingredients)
	sort.Strings(sorted)

	return Key{
		Ingredients: strings.Join(sorted, keySeparator),
		Template:    templateID,
	}
}

// String 用於日誌的鍵表示，不直接輸出食材內容
func (k Key) String() string {
	sum := sha256.Sum256([]byte(k.Template + "|" + k.Ingredients))
	return fmt.Sprintf("suggest:%s:%s", k.Template, hex.EncodeToString(sum[:8]))
}
