package app

import (
	"io"

	"cascadebench/internal/bench"
	"cascadebench/internal/vision"
)

// SourceCloser は解放が必要な映像入力
type SourceCloser interface {
	bench.Source
	io.Closer
}

// DisplayCloser は解放が必要な表示先
type DisplayCloser interface {
	bench.Display
	io.Closer
}

// DetectorCloser は解放が必要な検出器
type DetectorCloser interface {
	bench.Detector
	io.Closer
}

// Backend はカメラ・ウィンドウ・検出器の生成を担う
type Backend interface {
	OpenSource(device string) (SourceCloser, error)
	OpenDisplay(title string) (DisplayCloser, error)
	LoadDetector(path string) (DetectorCloser, error)
}

// gocvBackend は OpenCV を使う本番用の Backend
type gocvBackend struct{}

// NewGocvBackend は OpenCV を使う Backend を返す
func NewGocvBackend() Backend {
	return gocvBackend{}
}

func (gocvBackend) OpenSource(device string) (SourceCloser, error) {
	cam, err := vision.OpenCamera(device)
	if err != nil {
		return nil, err
	}
	return cam, nil
}

func (gocvBackend) OpenDisplay(title string) (DisplayCloser, error) {
	return vision.NewWindow(title), nil
}

func (gocvBackend) LoadDetector(path string) (DetectorCloser, error) {
	c, err := vision.LoadCascade(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}
