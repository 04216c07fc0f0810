package bench

import (
	"image"
	"image/color"
	"time"
)

// State はセッションの状態を表す
type State string

const (
	StateIdle    State = "idle"    // 未開始
	StateRunning State = "running" // ループ実行中
	StateStopped State = "stopped" // 終了済み（再開不可）
)

// DetectParams は検出器に渡すチューニング値
type DetectParams struct {
	ScaleFactor  float64 // 画像ピラミッドの縮小率
	MinNeighbors int     // 候補矩形を採用する最小近傍数
}

// DefaultDetectParams は計測環境で使われてきた値を返す
func DefaultDetectParams() DetectParams {
	return DetectParams{
		ScaleFactor:  1.1,
		MinNeighbors: 5,
	}
}

// Image は検出器に渡すグレースケール画像
// 中身はバックエンドごとに異なり、このパッケージからは参照しない
type Image interface{}

// Frame はカメラから取得した1フレーム（カラー）
type Frame interface {
	// Grayscale は検出用の単一チャンネル画像を返す。フレーム自体はカラーのまま
	Grayscale() (Image, error)

	// PutText はフレームに文字列を描画する
	PutText(text string, org image.Point, c color.RGBA)

	// Rectangle はフレームに矩形を描画する
	Rectangle(r image.Rectangle, c color.RGBA)
}

// Source は映像の取得元
// Read が返す Frame は次の Read 呼び出しまで有効
type Source interface {
	Read() (Frame, error)
}

// Display はプレビューウィンドウ
type Display interface {
	// Show は注釈済みフレームを表示する
	Show(f Frame) error

	// WaitKey は最大 wait だけキー入力を待つ。入力がなければ負の値を返す
	WaitKey(wait time.Duration) int
}

// Detector はグレースケール画像から顔候補の矩形を返す
type Detector interface {
	Detect(gray Image, params DetectParams) []image.Rectangle
}

// DetectorFunc は関数を Detector として扱うためのアダプタ
type DetectorFunc func(gray Image, params DetectParams) []image.Rectangle

// Detect は f(gray, params) を呼ぶ
func (f DetectorFunc) Detect(gray Image, params DetectParams) []image.Rectangle {
	return f(gray, params)
}
