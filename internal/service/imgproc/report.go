package imgproc

import (
	"fmt"
	"io"
	"time"

	"imgpipe/internal/service/common"
)

// PrintSummary は実行結果をテーブル形式で表示する
func PrintSummary(w io.Writer, s *RunSummary) {
	if s.Empty() {
		fmt.Fprintf(w, "%s 処理対象のオブジェクトはありませんでした (一覧: %d件)\n", common.InfoIcon, s.Listed)
		return
	}
	if s.DryRun {
		fmt.Fprintf(w, "%s ドライラン: %d件が処理対象です (一覧: %d件, モード: %s)\n",
			common.InfoIcon, len(s.Selected), s.Listed, s.Mode)
		return
	}

	columns := []common.TableColumn{
		{Header: "ソースキー"},
		{Header: "出力キー"},
		{Header: "結果"},
		{Header: "詳細"},
		{Header: "所要時間"},
	}
	data := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		status := common.SuccessIcon
		detail := "完了"
		if r.Deleted {
			detail = "完了（ソース削除済み）"
		}
		if !r.Success {
			status = common.ErrorIcon
			detail = fmt.Sprintf("%s で失敗", r.Stage)
		}
		data = append(data, []string{r.Item, r.DestKey, status, detail, r.Duration.Round(time.Millisecond).String()})
	}
	common.PrintTable(w, fmt.Sprintf("処理結果 (実行ID: %s)", s.RunID), columns, data)

	succeeded, failed := s.Counts()
	fmt.Fprintf(w, "\n合計: %d件 (成功 %d件, 失敗 %d件)\n", len(s.Results), succeeded, failed)
}
