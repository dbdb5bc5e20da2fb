package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"imgpipe/internal/service/common"
	"imgpipe/internal/service/imgproc"
)

// List はプレフィックス配下のオブジェクト一覧を取得します（サブフォルダも含む）
// 順序はS3の一覧順（キーの昇順）のまま返します
func (s *Store) List(ctx context.Context, bucket, prefix string) ([]imgproc.RemoteObject, error) {
	var objects []imgproc.RemoteObject

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "オブジェクト", newOpError("list", bucket, prefix, err))
		}

		for _, obj := range page.Contents {
			objects = append(objects, imgproc.RemoteObject{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified).UTC(),
			})
		}
	}

	return objects, nil
}
