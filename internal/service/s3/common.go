package s3

import (
	"fmt"
	"strings"
)

// ParseS3Url s3://bucket/prefix/ 形式を分解
// プレフィックスが指定されている場合は末尾に "/" を補う
func ParseS3Url(s3url string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(s3url, "s3://") {
		return "", "", fmt.Errorf("⚠️ S3パスは s3:// で始めてください: %s", s3url)
	}
	noPrefix := strings.TrimPrefix(s3url, "s3://")
	parts := strings.SplitN(noPrefix, "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", fmt.Errorf("⚠️ S3パスにバケット名がありません: %s", s3url)
	}
	if len(parts) > 1 {
		prefix = parts[1]
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, nil
}
