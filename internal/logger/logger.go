package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat はコンソール出力の時刻形式
const TimeFormat = "2006-01-02 15:04:05"

// New はレベルと形式（console / json）を指定してロガーを作成する
// level が空の場合は info として扱う
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("⚠️ 不正なログレベルです: %s", level)
		}
		lvl = parsed
	}

	var out io.Writer
	switch format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: TimeFormat}
	case "json":
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("⚠️ 不正なログ形式です: %s", format)
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
