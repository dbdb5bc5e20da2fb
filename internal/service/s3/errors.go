package s3

import (
	"errors"
	"fmt"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// errors.Is で判定できるS3エラーの種別
var (
	ErrNotFound     = errors.New("s3: オブジェクトまたはバケットが見つかりません")
	ErrAccessDenied = errors.New("s3: アクセスが拒否されました")
)

// OpError は失敗したS3操作とバケット・キーを保持するエラー
type OpError struct {
	Op     string
	Bucket string
	Key    string
	Kind   error // ErrNotFound / ErrAccessDenied（判定できない場合はnil）
	Err    error
}

func (e *OpError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("s3.%s s3://%s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("s3.%s s3://%s: %v", e.Op, e.Bucket, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Kind != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Err}
}

func newOpError(op, bucket, key string, err error) *OpError {
	return &OpError{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Kind:   classifyError(err),
		Err:    err,
	}
}

// classifyError はAPIエラーコードまたはHTTPステータスからエラー種別を判定する
func classifyError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return ErrNotFound
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return ErrAccessDenied
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusForbidden:
			return ErrAccessDenied
		}
	}
	return nil
}
