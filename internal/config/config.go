package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"imgpipe/internal/service/imgproc"
)

// EnvPrefix は環境変数のプレフィックス（例: IMGPIPE_INPUT_BUCKET）
const EnvPrefix = "IMGPIPE"

// DefaultRegion は元の運用リージョン
const DefaultRegion = "ap-southeast-1"

// 設定キー（フラグ名・設定ファイルのキーと共通）
const (
	KeyProfile   = "profile"
	KeyRegion    = "region"
	KeyEndpoint  = "endpoint"
	KeyPathStyle = "path-style"

	KeyInputBucket    = "input-bucket"
	KeyOutputBucket   = "output-bucket"
	KeySrcPrefix      = "src-prefix"
	KeyDstPrefix      = "dst-prefix"
	KeyMode           = "mode"
	KeyInclude        = "include"
	KeyScratchDir     = "scratch-dir"
	KeyDeleteSource   = "delete-source"
	KeyCleanupScratch = "cleanup-scratch"
	KeyDryRun         = "dry-run"
	KeyProgress       = "progress"

	KeyQuality   = "quality"
	KeyMaxWidth  = "max-width"
	KeyMaxHeight = "max-height"

	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

// ログ出力形式
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Config struct {
	AWS       AWSConfig
	Pipeline  PipelineConfig
	Transform TransformConfig
	Log       LogConfig
}

type AWSConfig struct {
	Profile      string
	Region       string
	Endpoint     string
	UsePathStyle bool
}

type PipelineConfig struct {
	InputBucket    string
	OutputBucket   string
	SourcePrefix   string
	DestPrefix     string
	Mode           string
	Include        string
	ScratchDir     string
	DeleteSource   bool
	CleanupScratch bool
	DryRun         bool
	Progress       bool
}

type TransformConfig struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
}

type LogConfig struct {
	Level  string
	Format string
}

// New はデフォルト値と環境変数を設定したviperインスタンスを返す
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// AWS標準の環境変数もフォールバックとして参照する
	_ = v.BindEnv(KeyProfile, EnvPrefix+"_PROFILE", "AWS_PROFILE")
	_ = v.BindEnv(KeyRegion, EnvPrefix+"_REGION", "AWS_REGION")
	return v
}

// SetDefaults は全設定キーのデフォルト値を登録する
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRegion, DefaultRegion)
	v.SetDefault(KeyEndpoint, "")
	v.SetDefault(KeyPathStyle, false)

	v.SetDefault(KeyInputBucket, "")
	v.SetDefault(KeyOutputBucket, "")
	v.SetDefault(KeySrcPrefix, "uploads/")
	v.SetDefault(KeyDstPrefix, "processed/")
	v.SetDefault(KeyMode, imgproc.PolicyAll.String())
	v.SetDefault(KeyInclude, "")
	v.SetDefault(KeyScratchDir, imgproc.DefaultScratchDir())
	v.SetDefault(KeyDeleteSource, false)
	v.SetDefault(KeyCleanupScratch, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyProgress, true)

	v.SetDefault(KeyQuality, imgproc.DefaultQuality)
	v.SetDefault(KeyMaxWidth, imgproc.DefaultMaxWidth)
	v.SetDefault(KeyMaxHeight, imgproc.DefaultMaxHeight)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, LogFormatConsole)
}

// Load は .env・設定ファイル・環境変数・フラグを読み込んでConfigを組み立てる
// configFile が空なら設定ファイルは読まない
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// .env がなくてもエラーにしない
	_ = godotenv.Load()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("❌ 設定ファイル %s の読み込みに失敗: %w", configFile, err)
		}
	}

	return &Config{
		AWS: AWSConfig{
			Profile:      v.GetString(KeyProfile),
			Region:       v.GetString(KeyRegion),
			Endpoint:     v.GetString(KeyEndpoint),
			UsePathStyle: v.GetBool(KeyPathStyle),
		},
		Pipeline: PipelineConfig{
			InputBucket:    v.GetString(KeyInputBucket),
			OutputBucket:   v.GetString(KeyOutputBucket),
			SourcePrefix:   v.GetString(KeySrcPrefix),
			DestPrefix:     v.GetString(KeyDstPrefix),
			Mode:           v.GetString(KeyMode),
			Include:        v.GetString(KeyInclude),
			ScratchDir:     v.GetString(KeyScratchDir),
			DeleteSource:   v.GetBool(KeyDeleteSource),
			CleanupScratch: v.GetBool(KeyCleanupScratch),
			DryRun:         v.GetBool(KeyDryRun),
			Progress:       v.GetBool(KeyProgress),
		},
		Transform: TransformConfig{
			Quality:   v.GetInt(KeyQuality),
			MaxWidth:  v.GetInt(KeyMaxWidth),
			MaxHeight: v.GetInt(KeyMaxHeight),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}, nil
}

// Validate は処理実行に必要な設定をまとめてチェックする
func (c *Config) Validate() error {
	var errs []error

	if c.Pipeline.InputBucket == "" {
		errs = append(errs, errors.New("入力バケット (--input-bucket) が指定されていません"))
	}
	if c.Pipeline.OutputBucket == "" {
		errs = append(errs, errors.New("出力バケット (--output-bucket) が指定されていません"))
	}
	if _, err := imgproc.ParsePolicy(c.Pipeline.Mode); err != nil {
		errs = append(errs, err)
	}
	if err := c.TransformParams().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("不正なログレベルです: %s", c.Log.Level))
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("不正なログ形式です: %s (console または json)", c.Log.Format))
	}

	return errors.Join(errs...)
}

// TransformParams は変換パラメータを返す
func (c *Config) TransformParams() imgproc.TransformParams {
	return imgproc.TransformParams{
		MaxWidth:  c.Transform.MaxWidth,
		MaxHeight: c.Transform.MaxHeight,
		Quality:   c.Transform.Quality,
	}
}

// DriverConfig はパイプラインの実行設定に変換する
func (c *Config) DriverConfig() (imgproc.DriverConfig, error) {
	policy, err := imgproc.ParsePolicy(c.Pipeline.Mode)
	if err != nil {
		return imgproc.DriverConfig{}, err
	}
	return imgproc.DriverConfig{
		InputBucket:              c.Pipeline.InputBucket,
		OutputBucket:             c.Pipeline.OutputBucket,
		SourcePrefix:             c.Pipeline.SourcePrefix,
		DestPrefix:               c.Pipeline.DestPrefix,
		Policy:                   policy,
		Params:                   c.TransformParams(),
		Include:                  c.Pipeline.Include,
		ScratchDir:               c.Pipeline.ScratchDir,
		DeleteSourceAfterSuccess: c.Pipeline.DeleteSource,
		CleanupScratch:           c.Pipeline.CleanupScratch,
		DryRun:                   c.Pipeline.DryRun,
	}, nil
}
