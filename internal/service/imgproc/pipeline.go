package imgproc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"imgpipe/internal/service/common"
)

// DriverConfig は1回の実行で共通の設定
type DriverConfig struct {
	InputBucket  string
	OutputBucket string
	SourcePrefix string
	DestPrefix   string

	Policy  SelectionPolicy
	Params  TransformParams
	Include string // ソースプレフィックスからの相対キーに対するglob（空なら全件）

	ScratchDir string

	DeleteSourceAfterSuccess bool // アップロード成功後にソースオブジェクトを削除する
	CleanupScratch           bool // 1件の処理後に作業ファイルを削除する
	DryRun                   bool // 一覧と選択のみ行い、転送しない
}

// Validate は設定の必須項目と整合性をチェックする
func (c DriverConfig) Validate() error {
	if c.InputBucket == "" {
		return errors.New("入力バケットが指定されていません")
	}
	if c.OutputBucket == "" {
		return errors.New("出力バケットが指定されていません")
	}
	// 同一バケットでプレフィックスが包含関係にあると、出力の再処理やソースの上書きが起こる
	if c.InputBucket == c.OutputBucket &&
		(strings.HasPrefix(c.DestPrefix, c.SourcePrefix) || strings.HasPrefix(c.SourcePrefix, c.DestPrefix)) {
		return fmt.Errorf("出力先 s3://%s/%s が入力 s3://%s/%s と重複しています",
			c.OutputBucket, c.DestPrefix, c.InputBucket, c.SourcePrefix)
	}
	if c.ScratchDir == "" {
		return errors.New("作業ディレクトリが指定されていません")
	}
	return c.Params.Validate()
}

// DefaultScratchDir はデフォルトの作業ディレクトリを返す
func DefaultScratchDir() string {
	return filepath.Join(os.TempDir(), "imgpipe")
}

// Option はDriverのオプション
type Option func(*Driver)

// WithLogger は処理ログの出力先を設定する
func WithLogger(log zerolog.Logger) Option {
	return func(d *Driver) {
		d.log = log
	}
}

// WithProgress はプログレスバーの出力先を設定する（nilなら表示しない）
func WithProgress(w io.Writer) Option {
	return func(d *Driver) {
		d.progress = w
	}
}

// WithRunID は実行IDを固定する（未指定ならUUIDを採番）
func WithRunID(id string) Option {
	return func(d *Driver) {
		d.runID = id
	}
}

// Driver は 一覧取得 → 選択 → (ダウンロード → 変換 → キー変換 → アップロード) を順番に実行する
type Driver struct {
	cfg         DriverConfig
	store       Storage
	transformer Transformer
	filter      *KeyFilter
	stager      *Stager

	log      zerolog.Logger
	progress io.Writer
	runID    string
}

// NewDriver は設定を検証してDriverを作成する
func NewDriver(cfg DriverConfig, store Storage, transformer Transformer, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	filter, err := NewKeyFilter(cfg.Include, cfg.SourcePrefix)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		cfg:         cfg,
		store:       store,
		transformer: transformer,
		filter:      filter,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.runID == "" {
		d.runID = uuid.NewString()
	}
	d.stager = NewStager(cfg.ScratchDir, d.runID)
	return d, nil
}

// RunID は実行IDを返す
func (d *Driver) RunID() string {
	return d.runID
}

// Run はパイプラインを1回実行する
// 一覧取得の失敗のみエラーとして返し、各オブジェクトの失敗は RunSummary に記録して次へ進む
func (d *Driver) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:  d.runID,
		Mode:   d.cfg.Policy,
		DryRun: d.cfg.DryRun,
	}

	d.log.Info().
		Str("run_id", d.runID).
		Str("mode", d.cfg.Policy.String()).
		Msgf("%s s3://%s/%s のオブジェクトを検索中...", common.SearchIcon, d.cfg.InputBucket, d.cfg.SourcePrefix)

	listing, err := d.store.List(ctx, d.cfg.InputBucket, d.cfg.SourcePrefix)
	if err != nil {
		return summary, &StageError{Stage: StageList, Key: d.cfg.SourcePrefix, Err: err}
	}
	summary.Listed = len(listing)

	keys := SelectKeys(d.filter.Apply(listing), d.cfg.Policy)
	summary.Selected = keys

	if len(keys) == 0 {
		d.log.Info().Int("listed", len(listing)).Msgf("%s 処理対象のオブジェクトがありません", common.InfoIcon)
		return summary, nil
	}
	d.log.Info().Int("listed", len(listing)).Int("selected", len(keys)).
		Msgf("%s %d件のオブジェクトを処理します", common.InfoIcon, len(keys))

	if d.cfg.DryRun {
		for _, key := range keys {
			d.log.Info().Str("key", key).
				Msgf("%s s3://%s/%s → s3://%s/%s", common.InfoIcon,
					d.cfg.InputBucket, key, d.cfg.OutputBucket, d.destKey(key))
		}
		return summary, nil
	}

	bar := d.newProgressBar(len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			d.log.Warn().Err(err).Msgf("%s 中断されたため残りのオブジェクトをスキップします", common.WarningIcon)
			return summary, err
		}
		summary.Results = append(summary.Results, d.processItem(ctx, key))
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	succeeded, failed := summary.Counts()
	if failed > 0 {
		d.log.Warn().Int("succeeded", succeeded).Int("failed", failed).
			Msgf("%s 処理完了: 成功 %d件, 失敗 %d件", common.WarningIcon, succeeded, failed)
	} else {
		d.log.Info().Int("succeeded", succeeded).
			Msgf("%s すべての画像の処理が完了しました (%d件)", common.PartyIcon, succeeded)
	}
	return summary, nil
}

// processItem は1件分のオブジェクトを処理する
func (d *Driver) processItem(ctx context.Context, key string) ItemResult {
	start := time.Now()
	res := ItemResult{
		ProcessResult: common.ProcessResult{Item: key},
		DestKey:       d.destKey(key),
	}
	log := d.log.With().Str("key", key).Logger()

	fail := func(stage Stage, err error) ItemResult {
		res.Stage = stage
		res.Error = &StageError{Stage: stage, Key: key, Err: err}
		res.Duration = time.Since(start)
		log.Error().Err(err).Str("stage", string(stage)).
			Msgf("%s %s の処理に失敗 (%s)", common.ErrorIcon, key, stage)
		return res
	}

	log.Info().Msgf("%s 処理中: %s", common.ProcessIcon, key)

	staged, err := d.stager.Stage(key)
	if err != nil {
		return fail(StageStage, err)
	}
	if d.cfg.CleanupScratch {
		defer func() {
			if err := d.stager.Cleanup(staged); err != nil {
				log.Warn().Err(err).Msgf("%s 作業ファイルの削除に失敗", common.WarningIcon)
			}
		}()
	}

	log.Debug().Str("path", staged.InputPath).Msgf("%s ダウンロード中...", common.DownloadIcon)
	if err := d.store.Download(ctx, d.cfg.InputBucket, key, staged.InputPath); err != nil {
		return fail(StageDownload, err)
	}

	log.Debug().Str("path", staged.OutputPath).Msgf("%s 変換中...", common.ProcessIcon)
	if err := d.transformer.Transform(ctx, staged.InputPath, staged.OutputPath, d.cfg.Params); err != nil {
		return fail(StageTransform, err)
	}

	log.Debug().Str("dest", res.DestKey).Msgf("%s アップロード中...", common.UploadIcon)
	if err := d.store.Upload(ctx, staged.OutputPath, d.cfg.OutputBucket, res.DestKey); err != nil {
		return fail(StageUpload, err)
	}

	if d.cfg.DeleteSourceAfterSuccess {
		if err := d.store.Delete(ctx, d.cfg.InputBucket, key); err != nil {
			return fail(StageDelete, err)
		}
		res.Deleted = true
		log.Debug().Msgf("%s ソースオブジェクトを削除しました", common.DeleteIcon)
	}

	res.Stage = StageDone
	res.Success = true
	res.Duration = time.Since(start)
	log.Info().Dur("duration", res.Duration).
		Msgf("%s アップロード完了: s3://%s/%s", common.SuccessIcon, d.cfg.OutputBucket, res.DestKey)
	return res
}

func (d *Driver) destKey(key string) string {
	return RewriteKey(key, d.cfg.SourcePrefix, d.cfg.DestPrefix)
}

func (d *Driver) newProgressBar(total int) *progressbar.ProgressBar {
	if d.progress == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(d.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("画像を処理中..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(d.progress)
		}),
	)
}
