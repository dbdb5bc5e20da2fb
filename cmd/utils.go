package cmd

import (
	"fmt"

	"imgpipe/internal/aws"
	"imgpipe/internal/config"
	s3svc "imgpipe/internal/service/s3"
)

// getAwsContext は設定からAWS接続情報を組み立てる
func getAwsContext(cfg *config.Config) aws.Context {
	return aws.Context{
		Profile:      cfg.AWS.Profile,
		Region:       cfg.AWS.Region,
		Endpoint:     cfg.AWS.Endpoint,
		UsePathStyle: cfg.AWS.UsePathStyle,
	}
}

// applyS3Urls は --input / --output の s3:// 形式をバケットとプレフィックスに展開する
// 指定されていない場合は個別の設定値をそのまま使う
func applyS3Urls(cfg *config.Config, input, output string) error {
	if input != "" {
		bucket, prefix, err := s3svc.ParseS3Url(input)
		if err != nil {
			return fmt.Errorf("❌ --input の解析に失敗: %w", err)
		}
		cfg.Pipeline.InputBucket = bucket
		cfg.Pipeline.SourcePrefix = prefix
	}
	if output != "" {
		bucket, prefix, err := s3svc.ParseS3Url(output)
		if err != nil {
			return fmt.Errorf("❌ --output の解析に失敗: %w", err)
		}
		cfg.Pipeline.OutputBucket = bucket
		cfg.Pipeline.DestPrefix = prefix
	}
	return nil
}
