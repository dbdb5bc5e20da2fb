package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"imgpipe/internal/aws"
	"imgpipe/internal/config"
	"imgpipe/internal/service/imgproc"
	s3svc "imgpipe/internal/service/s3"
)

var (
	processInput  string
	processOutput string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "S3上の画像をリサイズ・再圧縮して出力バケットへアップロードする",
	Long: `入力バケットのプレフィックス配下のオブジェクトを一覧取得し、選択モードに従って
対象を決定します。対象ごとに ダウンロード → リサイズ・JPEG再圧縮 → キー変換 → アップロード
を順番に実行します。1件の失敗でバッチは止まらず、失敗が1件でもあれば終了コードは1になります。

選択モード:
  all     プレフィックス配下の全オブジェクト（ディレクトリマーカーを除く）
  latest  最終更新日時が最も新しいオブジェクト1件

例:
  ` + AppName + ` process --input s3://s3-upload/uploads/ --output s3://bucket-output/processed/
  ` + AppName + ` process --input-bucket s3-upload --output-bucket bucket-output -m latest
  ` + AppName + ` process --input s3://s3-upload/uploads/ --output s3://bucket-output/processed/ --include "**.png" --dry-run
  ` + AppName + ` process -P my-profile --config imgpipe.yaml --delete-source`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *appCfg
		if err := applyS3Urls(&cfg, processInput, processOutput); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("❌ 設定エラー: %w", err)
		}

		ctx := cmd.Context()
		clients, err := aws.NewAwsClients(ctx, getAwsContext(&cfg))
		if err != nil {
			return fmt.Errorf("❌ AWS設定の読み込みに失敗: %w", err)
		}
		store := s3svc.NewStore(clients.S3())

		var progress io.Writer
		if cfg.Pipeline.Progress {
			progress = cmd.ErrOrStderr()
		}
		return runProcess(ctx, &cfg, store, appLog, cmd.OutOrStdout(), progress)
	},
	SilenceUsage: true,
}

// runProcess はパイプラインを実行して結果を表示する
// 1件でも失敗があればエラーを返す
func runProcess(ctx context.Context, cfg *config.Config, store imgproc.Storage, log zerolog.Logger, out, progress io.Writer) error {
	driverCfg, err := cfg.DriverConfig()
	if err != nil {
		return fmt.Errorf("❌ 設定エラー: %w", err)
	}

	driver, err := imgproc.NewDriver(driverCfg, store, imgproc.NewImagingTransformer(),
		imgproc.WithLogger(log),
		imgproc.WithProgress(progress),
	)
	if err != nil {
		return fmt.Errorf("❌ 設定エラー: %w", err)
	}

	summary, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("❌ 画像処理の実行に失敗: %w", err)
	}

	imgproc.PrintSummary(out, summary)

	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("❌ %d件の処理に失敗しました: %w", failed, summary.Err())
	}
	return nil
}

func init() {
	RootCmd.AddCommand(processCmd)

	flags := processCmd.Flags()
	flags.StringVar(&processInput, "input", "", "入力先 (s3://bucket/prefix/ 形式、バケットとプレフィックスを同時に指定)")
	flags.StringVar(&processOutput, "output", "", "出力先 (s3://bucket/prefix/ 形式、バケットとプレフィックスを同時に指定)")

	flags.String(config.KeyInputBucket, "", "入力バケット名")
	flags.String(config.KeyOutputBucket, "", "出力バケット名")
	flags.String(config.KeySrcPrefix, "uploads/", "入力キーのプレフィックス")
	flags.String(config.KeyDstPrefix, "processed/", "出力キーのプレフィックス")
	flags.StringP(config.KeyMode, "m", imgproc.PolicyAll.String(), "選択モード (all, latest)")
	flags.StringP(config.KeyInclude, "i", "", "処理対象を絞り込むglobパターン（プレフィックスからの相対キー、例: **.png）")
	flags.IntP(config.KeyQuality, "q", imgproc.DefaultQuality, "JPEG品質 (0-100)")
	flags.Int(config.KeyMaxWidth, imgproc.DefaultMaxWidth, "最大幅 (px)")
	flags.Int(config.KeyMaxHeight, imgproc.DefaultMaxHeight, "最大高さ (px)")
	flags.String(config.KeyScratchDir, imgproc.DefaultScratchDir(), "作業ディレクトリ")
	flags.Bool(config.KeyDeleteSource, false, "アップロード成功後にソースオブジェクトを削除する")
	flags.Bool(config.KeyCleanupScratch, false, "1件の処理後に作業ファイルを削除する")
	flags.Bool(config.KeyDryRun, false, "一覧と選択のみ行い、転送しない")
	flags.Bool(config.KeyProgress, true, "プログレスバーを表示する")

	for _, key := range []string{
		config.KeyInputBucket, config.KeyOutputBucket, config.KeySrcPrefix, config.KeyDstPrefix,
		config.KeyMode, config.KeyInclude, config.KeyQuality, config.KeyMaxWidth, config.KeyMaxHeight,
		config.KeyScratchDir, config.KeyDeleteSource, config.KeyCleanupScratch, config.KeyDryRun,
		config.KeyProgress,
	} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
}
