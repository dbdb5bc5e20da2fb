package imgproc

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RemoteObject はストレージ一覧から取得したオブジェクト情報
type RemoteObject struct {
	Key          string
	LastModified time.Time // UTC
	Size         int64
}

// SelectionPolicy は処理対象オブジェクトの選択方式
type SelectionPolicy int

const (
	// PolicyAll はプレフィックス配下の全オブジェクトを処理する
	PolicyAll SelectionPolicy = iota
	// PolicyLatest は最終更新日時が最も新しいオブジェクト1件のみを処理する
	PolicyLatest
)

func (p SelectionPolicy) String() string {
	switch p {
	case PolicyAll:
		return "all"
	case PolicyLatest:
		return "latest"
	default:
		return fmt.Sprintf("SelectionPolicy(%d)", int(p))
	}
}

// ParsePolicy は "all" / "latest" を SelectionPolicy に変換する（大文字小文字は区別しない）
func ParsePolicy(s string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return PolicyAll, nil
	case "latest":
		return PolicyLatest, nil
	default:
		return PolicyAll, fmt.Errorf("不明なモードです: %q (all または latest を指定してください)", s)
	}
}

// 変換パラメータのデフォルト値
const (
	DefaultQuality   = 75
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 800
)

// TransformParams は1回の実行で共通の変換パラメータ
// 出力形式はJPEG固定
type TransformParams struct {
	MaxWidth  int
	MaxHeight int
	Quality   int // 0-100（1未満はエンコード時に1として扱われる）
}

// DefaultTransformParams はデフォルトの変換パラメータを返す
func DefaultTransformParams() TransformParams {
	return TransformParams{
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Quality:   DefaultQuality,
	}
}

// Validate は変換パラメータの範囲をチェックする
func (p TransformParams) Validate() error {
	if p.MaxWidth <= 0 || p.MaxHeight <= 0 {
		return fmt.Errorf("最大サイズは正の値を指定してください: %dx%d", p.MaxWidth, p.MaxHeight)
	}
	if p.Quality < 0 || p.Quality > 100 {
		return fmt.Errorf("品質は0〜100の範囲で指定してください: %d", p.Quality)
	}
	return nil
}

// StagedFile は1件分のローカル作業ファイル
type StagedFile struct {
	RemoteKey  string
	InputPath  string
	OutputPath string
}

// Storage はパイプラインが利用するオブジェクトストレージ操作
type Storage interface {
	List(ctx context.Context, bucket, prefix string) ([]RemoteObject, error)
	Download(ctx context.Context, bucket, key, localPath string) error
	Upload(ctx context.Context, localPath, bucket, key string) error
	Delete(ctx context.Context, bucket, key string) error
}

// Transformer はローカルの入力画像を変換して出力ファイルに書き込む
type Transformer interface {
	Transform(ctx context.Context, inputPath, outputPath string, params TransformParams) error
}
