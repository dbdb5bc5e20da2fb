package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"imgpipe/internal/config"
	"imgpipe/internal/logger"
)

// AppName はコマンド名
const AppName = "imgpipe"

var (
	cfgFile string

	v      = config.New()
	appCfg *config.Config
	appLog = zerolog.Nop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "S3上の画像を一括でリサイズ・再圧縮するCLIツール",
	Long: `入力バケットのプレフィックス配下にある画像を取得し、リサイズ・JPEG再圧縮して
出力バケットへアップロードするバッチ処理ツールです。

設定の優先順位: フラグ > 環境変数 (` + config.EnvPrefix + `_*) > 設定ファイル (--config) > デフォルト値`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP(config.KeyRegion, "R", config.DefaultRegion, "AWSリージョン")
	RootCmd.PersistentFlags().StringP(config.KeyProfile, "P", "", "AWSプロファイル")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "設定ファイルのパス (yaml/json/toml)")
	RootCmd.PersistentFlags().String(config.KeyEndpoint, "", "S3互換ストレージのエンドポイントURL (MinIO, LocalStack等)")
	RootCmd.PersistentFlags().Bool(config.KeyPathStyle, false, "パス形式のS3アドレスを使用する")
	RootCmd.PersistentFlags().String(config.KeyLogLevel, "info", "ログレベル (debug, info, warn, error)")
	RootCmd.PersistentFlags().String(config.KeyLogFormat, config.LogFormatConsole, "ログ形式 (console, json)")

	for _, key := range []string{config.KeyRegion, config.KeyProfile, config.KeyEndpoint,
		config.KeyPathStyle, config.KeyLogLevel, config.KeyLogFormat} {
		_ = v.BindPFlag(key, RootCmd.PersistentFlags().Lookup(key))
	}

	// コマンド実行前に共通で設定の読み込みとロガーの初期化を行う
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// ヘルプ・バージョン表示の場合はスキップ
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		appCfg = cfg
		appLog = log
		checkAndSetProfile(cmd, cfg)
		return nil
	}
}

// checkAndSetProfile はプロファイルの取得元を表示する
// 未指定の場合はデフォルトの認証情報チェーンを使用する
func checkAndSetProfile(cmd *cobra.Command, cfg *config.Config) {
	// プロファイルがフラグで指定されている場合は何もしない
	if cmd.Flags().Changed(config.KeyProfile) {
		return
	}
	if cfg.AWS.Profile == "" {
		appLog.Debug().Msg("🔍 プロファイル未指定のためデフォルトの認証情報を使用します")
		return
	}
	if envProfile := os.Getenv("AWS_PROFILE"); envProfile != "" && envProfile == cfg.AWS.Profile {
		appLog.Info().Msgf("🔍 環境変数 AWS_PROFILE の値 '%s' を使用します", envProfile)
	}
}
