package s3

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"imgpipe/internal/service/common"
	"imgpipe/internal/service/imgproc"
)

// Store はS3を使った imgproc.Storage 実装
type Store struct {
	client   S3API
	uploader *manager.Uploader
}

var _ imgproc.Storage = (*Store)(nil)

// NewStore はS3クライアントからStoreを作成する
func NewStore(client S3API) *Store {
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// Upload はローカルファイルを指定キーにアップロードする
// Content-Type はファイル内容から判定する
func (s *Store) Upload(ctx context.Context, localPath, bucket, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf(common.UploadErrorFormat, common.ErrorIcon, localPath, err)
	}
	defer f.Close()

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(localPath); err == nil {
		contentType = mtype.String()
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf(common.UploadErrorFormat, common.ErrorIcon, key, newOpError("upload", bucket, key, err))
	}
	return nil
}

// Delete は指定キーのオブジェクトを削除する
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(common.DeleteErrorFormat, common.ErrorIcon, key, newOpError("delete", bucket, key, err))
	}
	return nil
}
