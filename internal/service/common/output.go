package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TableColumn はテーブルの列定義
type TableColumn struct {
	Header string
}

// PrintTable はテーブル形式でデータを表示する
// 日本語などの全角文字を含んでも列が揃うよう表示幅で計算する
func PrintTable(w io.Writer, title string, columns []TableColumn, data [][]string) {
	if title != "" {
		fmt.Fprintf(w, "\n%s:\n", title)
	}

	colWidths := ColumnWidths(columns, data)

	// ヘッダー表示
	for i, col := range columns {
		fmt.Fprintf(w, "%s ", runewidth.FillRight(col.Header, colWidths[i]))
	}
	fmt.Fprintln(w)

	// 区切り線
	for i := range columns {
		fmt.Fprintf(w, "%s ", strings.Repeat("-", colWidths[i]))
	}
	fmt.Fprintln(w)

	// データ行
	for _, row := range data {
		for i, cell := range row {
			if i < len(columns) {
				fmt.Fprintf(w, "%s ", runewidth.FillRight(cell, colWidths[i]))
			}
		}
		fmt.Fprintln(w)
	}
}

// ColumnWidths は各列の表示幅（ヘッダーとデータの最大値）を返す
func ColumnWidths(columns []TableColumn, data [][]string) []int {
	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(colWidths) {
				if width := runewidth.StringWidth(cell); width > colWidths[i] {
					colWidths[i] = width
				}
			}
		}
	}
	return colWidths
}
