package imgproc

import (
	"errors"
	"fmt"
)

// Stage はパイプラインの処理段階
type Stage string

const (
	StageList      Stage = "list"
	StageStage     Stage = "stage"
	StageDownload  Stage = "download"
	StageTransform Stage = "transform"
	StageUpload    Stage = "upload"
	StageDelete    Stage = "delete"
	StageDone      Stage = "done"
)

// StageError は処理段階とキーを付与したエラー
type StageError struct {
	Stage Stage
	Key   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Key, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf はエラーチェーンから失敗した処理段階を取り出す
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
