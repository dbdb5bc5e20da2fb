package imgproc

import (
	"errors"
	"time"

	"imgpipe/internal/service/common"
)

// ItemResult は1件分の処理結果
// ProcessResult.Item はソースキー、Stage は最後に到達した処理段階
type ItemResult struct {
	common.ProcessResult
	DestKey  string
	Stage    Stage
	Deleted  bool
	Duration time.Duration
}

// RunSummary は1回の実行結果のまとめ
type RunSummary struct {
	RunID    string
	Mode     SelectionPolicy
	DryRun   bool
	Listed   int
	Selected []string
	Results  []ItemResult
}

// Empty は処理対象が1件もなかったかどうかを返す
func (s *RunSummary) Empty() bool {
	return len(s.Selected) == 0
}

// Counts は成功件数と失敗件数を返す
func (s *RunSummary) Counts() (succeeded, failed int) {
	results := make([]common.ProcessResult, 0, len(s.Results))
	for _, r := range s.Results {
		results = append(results, r.ProcessResult)
	}
	return common.CollectResults(results)
}

// Failed は失敗件数を返す
func (s *RunSummary) Failed() int {
	_, failed := s.Counts()
	return failed
}

// Err は失敗した全件のエラーをまとめて返す（失敗がなければnil）
func (s *RunSummary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if !r.Success && r.Error != nil {
			errs = append(errs, r.Error)
		}
	}
	return errors.Join(errs...)
}
