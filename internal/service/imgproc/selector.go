package imgproc

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// PathSeparator はキーのパス区切り文字
const PathSeparator = "/"

// IsDirectoryMarker はフォルダのプレースホルダーとなるキーかどうかを判定する
func IsDirectoryMarker(key string) bool {
	return strings.HasSuffix(key, PathSeparator)
}

// SelectKeys は一覧から選択方式に従って処理対象のキーを返す
// 対象がない場合は空のスライスを返す（エラーではない）
func SelectKeys(listing []RemoteObject, policy SelectionPolicy) []string {
	if policy == PolicyLatest {
		return selectLatest(listing)
	}
	return selectAll(listing)
}

// selectAll はディレクトリマーカー以外のキーを一覧の順序のまま返す
func selectAll(listing []RemoteObject) []string {
	keys := make([]string, 0, len(listing))
	for _, obj := range listing {
		if IsDirectoryMarker(obj.Key) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys
}

// selectLatest は最終更新日時が最大のキー1件を返す
// 同時刻の場合は先に出現したものを優先する
func selectLatest(listing []RemoteObject) []string {
	var latest *RemoteObject
	for i := range listing {
		obj := &listing[i]
		if IsDirectoryMarker(obj.Key) {
			continue
		}
		if latest == nil || obj.LastModified.After(latest.LastModified) {
			latest = obj
		}
	}
	if latest == nil {
		return []string{}
	}
	return []string{latest.Key}
}

// KeyFilter はソースプレフィックスからの相対キーに対するglobフィルター
// パターンが空の場合はすべてのキーに一致する
type KeyFilter struct {
	pattern string
	prefix  string
	matcher glob.Glob
}

// NewKeyFilter はglobパターンをコンパイルしてKeyFilterを作成する
// "*" は区切り文字をまたがず、"**" はまたいで一致する
func NewKeyFilter(pattern, prefix string) (*KeyFilter, error) {
	f := &KeyFilter{pattern: pattern, prefix: prefix}
	if pattern == "" {
		return f, nil
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("フィルターパターン %q が不正です: %w", pattern, err)
	}
	f.matcher = g
	return f, nil
}

// Match はキーがフィルターに一致するかを返す
func (f *KeyFilter) Match(key string) bool {
	if f == nil || f.matcher == nil {
		return true
	}
	return f.matcher.Match(strings.TrimPrefix(key, f.prefix))
}

// Apply はフィルターに一致するオブジェクトのみを一覧の順序のまま返す
func (f *KeyFilter) Apply(listing []RemoteObject) []RemoteObject {
	if f == nil || f.matcher == nil {
		return listing
	}
	filtered := make([]RemoteObject, 0, len(listing))
	for _, obj := range listing {
		if f.Match(obj.Key) {
			filtered = append(filtered, obj)
		}
	}
	return filtered
}

// String はフィルターパターンを返す
func (f *KeyFilter) String() string {
	if f == nil {
		return ""
	}
	return f.pattern
}
