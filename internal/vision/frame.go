package vision

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"cascadebench/internal/bench"
)

const (
	textScale     = 1.0
	textThickness = 2
	rectThickness = 2
)

// Frame は gocv.Mat を保持する bench.Frame 実装
// img と gray は呼び出し側が所有し、Frame は閉じない
type Frame struct {
	img  *gocv.Mat
	gray *gocv.Mat
}

// NewFrame は img をカラーフレーム、gray をグレースケールの出力先とするFrameを作成する
func NewFrame(img, gray *gocv.Mat) *Frame {
	return &Frame{img: img, gray: gray}
}

// Gray は検出器に渡すグレースケール画像
type Gray struct {
	mat *gocv.Mat
}

// Mat は中身の gocv.Mat を返す
func (g Gray) Mat() gocv.Mat {
	return *g.mat
}

// Mat はカラーフレームの gocv.Mat を返す
func (f *Frame) Mat() gocv.Mat {
	return *f.img
}

// Grayscale はフレームを単一チャンネルに変換する
func (f *Frame) Grayscale() (bench.Image, error) {
	if f.img.Empty() {
		return nil, errors.New("空のフレームはグレースケール化できません")
	}

	if f.img.Channels() == 1 {
		f.img.CopyTo(f.gray)
	} else {
		gocv.CvtColor(*f.img, f.gray, gocv.ColorBGRToGray)
	}

	return Gray{mat: f.gray}, nil
}

// PutText はフレームに文字列を描画する
func (f *Frame) PutText(text string, org image.Point, c color.RGBA) {
	gocv.PutText(f.img, text, org, gocv.FontHersheySimplex, textScale, c, textThickness)
}

// Rectangle はフレームに矩形を描画する
func (f *Frame) Rectangle(r image.Rectangle, c color.RGBA) {
	gocv.Rectangle(f.img, r, c, rectThickness)
}
