package imgproc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"imgpipe/internal/service/common"
)

// OutputFormat は変換後の出力形式（固定）
const OutputFormat = imaging.JPEG

// ErrUnsupportedFormat は入力ファイルが画像として扱えない場合のエラー
var ErrUnsupportedFormat = errors.New("サポートされていない形式です")

// ImagingTransformer は disintegration/imaging による Transformer 実装
type ImagingTransformer struct {
	// Background は透過部分を塗りつぶす色（デフォルト: 白）
	Background color.Color
}

// NewImagingTransformer は白背景でアルファを平坦化するTransformerを作成する
func NewImagingTransformer() *ImagingTransformer {
	return &ImagingTransformer{Background: color.White}
}

// Transform は入力画像を最大サイズ内に縮小し、JPEGで出力する
// 縦横比は維持し、最大サイズより小さい画像は拡大しない
func (t *ImagingTransformer) Transform(ctx context.Context, inputPath, outputPath string, params TransformParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mtype, err := mimetype.DetectFile(inputPath)
	if err != nil {
		return fmt.Errorf("入力ファイル %s の読み込みに失敗: %w", inputPath, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}

	src, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf(common.TransformErrorFormat, common.ErrorIcon, inputPath, err)
	}

	resized := FitWithin(src, params.MaxWidth, params.MaxHeight)
	flat := t.flatten(resized)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("出力ファイル %s の作成に失敗: %w", outputPath, err)
	}
	if err := imaging.Encode(out, flat, OutputFormat, imaging.JPEGQuality(params.Quality)); err != nil {
		_ = out.Close()
		return fmt.Errorf(common.TransformErrorFormat, common.ErrorIcon, outputPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("出力ファイル %s のクローズに失敗: %w", outputPath, err)
	}
	return nil
}

// FitWithin は縦横比を維持して maxWidth x maxHeight に収まるよう縮小する
// すでに収まっている画像はそのままのサイズで返す
func FitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

// flatten は背景色の上に画像を重ね、JPEGで表現できない透過やパレットを除去する
func (t *ImagingTransformer) flatten(img image.Image) *image.NRGBA {
	bg := t.Background
	if bg == nil {
		bg = color.White
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
