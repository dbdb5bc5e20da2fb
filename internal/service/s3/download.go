package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"imgpipe/internal/service/common"
)

// Download は指定キーのオブジェクトをローカルパスに保存する
// 保存先のディレクトリがなければ作成する
func (s *Store) Download(ctx context.Context, bucket, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf(common.CreateErrorFormat, common.ErrorIcon, filepath.Dir(localPath), err)
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(common.DownloadErrorFormat, common.ErrorIcon, key, newOpError("download", bucket, key, err))
	}
	defer resp.Body.Close()

	outFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf(common.CreateErrorFormat, common.ErrorIcon, localPath, err)
	}

	_, err = io.Copy(outFile, resp.Body)
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// 書きかけのファイルは残さない
		_ = os.Remove(localPath)
		return fmt.Errorf(common.DownloadErrorFormat, common.ErrorIcon, key, newOpError("download", bucket, key, err))
	}
	return nil
}
