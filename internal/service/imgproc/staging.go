package imgproc

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 作業ディレクトリ内のレイアウト
const (
	inputDirName  = "input"
	outputDirName = "output"
	outputMarker  = "processed-"
	outputExt     = ".jpg"
)

// Stager はリモートキーから実行単位の作業ディレクトリ内のローカルパスを決定する
type Stager struct {
	root string
}

// NewStager は scratchDir/runID を作業ディレクトリとするStagerを作成する
func NewStager(scratchDir, runID string) *Stager {
	return &Stager{root: filepath.Join(scratchDir, runID)}
}

// Root は作業ディレクトリのパスを返す
func (s *Stager) Root() string {
	return s.root
}

// Stage はリモートキーに対応する入力・出力のローカルパスを返す
// 同じファイル名が別フォルダにあっても衝突しないよう、キー全体から求めたタグを付与する
// 書き込み前に必要なディレクトリを作成する
func (s *Stager) Stage(remoteKey string) (StagedFile, error) {
	base := BaseName(remoteKey)
	if base == "" {
		return StagedFile{}, fmt.Errorf("キー %q からファイル名を取得できません", remoteKey)
	}

	inDir := filepath.Join(s.root, inputDirName)
	outDir := filepath.Join(s.root, outputDirName)
	for _, dir := range []string{inDir, outDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return StagedFile{}, fmt.Errorf("作業ディレクトリ %s の作成に失敗: %w", dir, err)
		}
	}

	tag := keyTag(remoteKey)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return StagedFile{
		RemoteKey:  remoteKey,
		InputPath:  filepath.Join(inDir, tag+"-"+base),
		OutputPath: filepath.Join(outDir, outputMarker+tag+"-"+stem+outputExt),
	}, nil
}

// Cleanup は作業ファイルを削除する（存在しないファイルは無視）
func (s *Stager) Cleanup(f StagedFile) error {
	var errs []error
	for _, p := range []string{f.InputPath, f.OutputPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BaseName はキーの最後の区切り文字以降（ファイル名部分）を返す
func BaseName(key string) string {
	if i := strings.LastIndex(key, PathSeparator); i >= 0 {
		return key[i+1:]
	}
	return key
}

// keyTag はキー全体から決定的な8文字のタグを生成する
func keyTag(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()[:8]
}
