package vision

import (
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"cascadebench/internal/bench"
)

// Window は gocv.Window を使った bench.Display 実装
type Window struct {
	title  string
	window *gocv.Window
}

// NewWindow はプレビューウィンドウを開く
func NewWindow(title string) *Window {
	return &Window{
		title:  title,
		window: gocv.NewWindow(title),
	}
}

// Show はフレームを表示する
func (w *Window) Show(f bench.Frame) error {
	frame, ok := f.(*Frame)
	if !ok {
		return errors.Errorf("未対応のフレーム型です: %T", f)
	}
	w.window.IMShow(frame.Mat())
	return nil
}

// WaitKey は最大 wait だけキー入力を待つ
// OpenCV では0が無期限待ちを意味するため最短1msに切り上げる
func (w *Window) WaitKey(wait time.Duration) int {
	ms := int(wait / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return w.window.WaitKey(ms)
}

// Close はウィンドウを閉じる
func (w *Window) Close() error {
	if err := w.window.Close(); err != nil {
		return errors.Wrapf(err, "ウィンドウ %s のクローズに失敗", w.title)
	}
	return nil
}
