package bench

import "github.com/pkg/errors"

var (
	// ErrDeviceUnavailable はカメラを開けない、またはフレームを取得できないことを表す
	ErrDeviceUnavailable = errors.New("カメラデバイスが利用できません")

	// ErrDetectorLoad は検出器定義の読み込み失敗を表す
	ErrDetectorLoad = errors.New("検出器の読み込みに失敗しました")
)
