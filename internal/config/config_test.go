package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgpipe/internal/service/imgproc"
)

// clearEnv はテスト環境の影響を受けないよう関連する環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"AWS_PROFILE", "AWS_REGION", "IMGPIPE_PROFILE", "IMGPIPE_REGION",
		"IMGPIPE_INPUT_BUCKET", "IMGPIPE_OUTPUT_BUCKET", "IMGPIPE_MODE", "IMGPIPE_QUALITY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultRegion, cfg.AWS.Region)
	assert.Empty(t, cfg.AWS.Profile)
	assert.Equal(t, "uploads/", cfg.Pipeline.SourcePrefix)
	assert.Equal(t, "processed/", cfg.Pipeline.DestPrefix)
	assert.Equal(t, "all", cfg.Pipeline.Mode)
	assert.Equal(t, imgproc.DefaultScratchDir(), cfg.Pipeline.ScratchDir)
	assert.True(t, cfg.Pipeline.Progress)
	assert.False(t, cfg.Pipeline.DeleteSource)
	assert.False(t, cfg.Pipeline.DryRun)
	assert.Equal(t, TransformConfig{Quality: 75, MaxWidth: 800, MaxHeight: 800}, cfg.Transform)
	assert.Equal(t, LogConfig{Level: "info", Format: LogFormatConsole}, cfg.Log)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMGPIPE_INPUT_BUCKET", "s3-upload")
	t.Setenv("IMGPIPE_OUTPUT_BUCKET", "bucket-output")
	t.Setenv("IMGPIPE_MODE", "latest")
	t.Setenv("IMGPIPE_QUALITY", "60")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_PROFILE", "dev")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "s3-upload", cfg.Pipeline.InputBucket)
	assert.Equal(t, "bucket-output", cfg.Pipeline.OutputBucket)
	assert.Equal(t, "latest", cfg.Pipeline.Mode)
	assert.Equal(t, 60, cfg.Transform.Quality)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "dev", cfg.AWS.Profile)
}

func TestLoad_PrefixedRegionWinsOverAWSRegion(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("IMGPIPE_REGION", "eu-west-1")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "imgpipe.yaml")
	content := `input-bucket: from-file
output-bucket: out-file
dst-prefix: thumbs/
max-width: 320
delete-source: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	// 環境変数は設定ファイルより優先される
	t.Setenv("IMGPIPE_OUTPUT_BUCKET", "out-env")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Pipeline.InputBucket)
	assert.Equal(t, "out-env", cfg.Pipeline.OutputBucket)
	assert.Equal(t, "thumbs/", cfg.Pipeline.DestPrefix)
	assert.Equal(t, 320, cfg.Transform.MaxWidth)
	assert.Equal(t, 800, cfg.Transform.MaxHeight)
	assert.True(t, cfg.Pipeline.DeleteSource)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		AWS: AWSConfig{Region: DefaultRegion},
		Pipeline: PipelineConfig{
			InputBucket:  "s3-upload",
			OutputBucket: "bucket-output",
			SourcePrefix: "uploads/",
			DestPrefix:   "processed/",
			Mode:         "all",
			ScratchDir:   "/tmp/imgpipe",
		},
		Transform: TransformConfig{Quality: 75, MaxWidth: 800, MaxHeight: 800},
		Log:       LogConfig{Level: "info", Format: LogFormatConsole},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "latest mode upper case", modify: func(c *Config) { c.Pipeline.Mode = "LATEST" }},
		{name: "json log", modify: func(c *Config) { c.Log.Format = LogFormatJSON }},
		{name: "missing input bucket", modify: func(c *Config) { c.Pipeline.InputBucket = "" }, wantErr: true},
		{name: "missing output bucket", modify: func(c *Config) { c.Pipeline.OutputBucket = "" }, wantErr: true},
		{name: "unknown mode", modify: func(c *Config) { c.Pipeline.Mode = "newest" }, wantErr: true},
		{name: "quality zero", modify: func(c *Config) { c.Transform.Quality = 0 }},
		{name: "negative quality", modify: func(c *Config) { c.Transform.Quality = -1 }, wantErr: true},
		{name: "quality over 100", modify: func(c *Config) { c.Transform.Quality = 101 }, wantErr: true},
		{name: "negative width", modify: func(c *Config) { c.Transform.MaxWidth = -1 }, wantErr: true},
		{name: "bad log level", modify: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "bad log format", modify: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.InputBucket = ""
	cfg.Pipeline.OutputBucket = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input-bucket")
	assert.Contains(t, err.Error(), "--output-bucket")
}

func TestConfig_DriverConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Mode = "latest"
	cfg.Pipeline.Include = "**.png"
	cfg.Pipeline.DeleteSource = true
	cfg.Pipeline.DryRun = true

	dc, err := cfg.DriverConfig()
	require.NoError(t, err)

	assert.Equal(t, imgproc.PolicyLatest, dc.Policy)
	assert.Equal(t, "s3-upload", dc.InputBucket)
	assert.Equal(t, "bucket-output", dc.OutputBucket)
	assert.Equal(t, "**.png", dc.Include)
	assert.True(t, dc.DeleteSourceAfterSuccess)
	assert.True(t, dc.DryRun)
	assert.Equal(t, imgproc.TransformParams{MaxWidth: 800, MaxHeight: 800, Quality: 75}, dc.Params)
	assert.NoError(t, dc.Validate())
}
