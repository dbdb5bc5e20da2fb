package imgproc

import "strings"

// RewriteKey はソースキー中の最初の sourcePrefix を destPrefix に置き換えた出力キーを返す
// sourcePrefix を含まない場合はそのまま返す
func RewriteKey(sourceKey, sourcePrefix, destPrefix string) string {
	if sourcePrefix == "" {
		return sourceKey
	}
	return strings.Replace(sourceKey, sourcePrefix, destPrefix, 1)
}
