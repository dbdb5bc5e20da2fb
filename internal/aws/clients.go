package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Clients はAWS設定とS3クライアントを管理
type Clients struct {
	cfg    aws.Config
	awsCtx Context

	// 遅延初期化されるクライアント
	s3 *s3.Client
}

// NewAwsClients は認証情報からAWS設定を読み込んでクライアント管理構造体を作成
func NewAwsClients(ctx context.Context, awsCtx Context) (*Clients, error) {
	cfg, err := awsCtx.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &Clients{cfg: cfg, awsCtx: awsCtx}, nil
}

// S3 は遅延初期化でS3クライアントを取得
// エンドポイントが指定されている場合はS3互換ストレージ向けに設定する
func (c *Clients) S3() *s3.Client {
	if c.s3 == nil {
		c.s3 = s3.NewFromConfig(c.cfg, S3Options(c.awsCtx))
	}
	return c.s3
}

// S3Options はContextのエンドポイント設定をS3クライアントオプションに変換する
func S3Options(awsCtx Context) func(*s3.Options) {
	return func(o *s3.Options) {
		if awsCtx.Endpoint != "" {
			o.BaseEndpoint = aws.String(awsCtx.Endpoint)
		}
		o.UsePathStyle = awsCtx.UsePathStyle
	}
}
