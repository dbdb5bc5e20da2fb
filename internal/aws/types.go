package aws

import "github.com/aws/aws-sdk-go-v2/aws"

// Context AwsContext は認証情報と接続先を保持
type Context struct {
	Profile string
	Region  string

	// Endpoint はS3互換ストレージ（MinIO, LocalStack等）向けのカスタムエンドポイント
	Endpoint     string
	UsePathStyle bool

	config *aws.Config // AWS設定のキャッシュ（非公開）
}
