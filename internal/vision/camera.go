package vision

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"cascadebench/internal/bench"
)

// Camera は gocv.VideoCapture を使った bench.Source 実装
// フレーム用の Mat は使い回すため、Read の戻り値は次の Read まで有効
type Camera struct {
	device  string
	capture *gocv.VideoCapture
	img     gocv.Mat
	gray    gocv.Mat
}

// OpenCamera はカメラデバイスを開く
// device はデバイス番号 ("0") または OpenCV が受け付けるパス・URL
func OpenCamera(device string) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(bench.ErrDeviceUnavailable, "カメラ %s を開けません: %v", device, err)
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, errors.Wrapf(bench.ErrDeviceUnavailable, "カメラ %s を開けません", device)
	}

	return &Camera{
		device:  device,
		capture: capture,
		img:     gocv.NewMat(),
		gray:    gocv.NewMat(),
	}, nil
}

// Device は開いたデバイス名を返す
func (c *Camera) Device() string {
	return c.device
}

// Read は1フレームを取得する
func (c *Camera) Read() (bench.Frame, error) {
	if ok := c.capture.Read(&c.img); !ok {
		return nil, errors.Wrapf(bench.ErrDeviceUnavailable, "カメラ %s からフレームを読み取れません", c.device)
	}
	if c.img.Empty() {
		return nil, errors.Wrapf(bench.ErrDeviceUnavailable, "カメラ %s から空のフレームを受信しました", c.device)
	}

	return NewFrame(&c.img, &c.gray), nil
}

// Close はカメラとフレーム用の Mat を解放する
func (c *Camera) Close() error {
	var firstErr error
	for _, closeFn := range []func() error{c.img.Close, c.gray.Close, c.capture.Close} {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return errors.Wrapf(firstErr, "カメラ %s の解放に失敗", c.device)
	}
	return nil
}
