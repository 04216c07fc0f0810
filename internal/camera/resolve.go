package camera

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ResolveDevice は設定値から OpenCV に渡すデバイス指定を決める
//
// "auto" または空文字の場合は最初に見つかったデバイスの番号を返し、
// 見つからなければ FallbackDevice を返す。それ以外はそのまま返す。
func ResolveDevice(ctx context.Context, d Discovery, device string, logger logrus.FieldLogger) string {
	if device != "" && device != AutoDevice {
		return device
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	devices, err := d.ScanDevices(ctx)
	if err != nil {
		logger.WithError(err).Warn("カメラの検出に失敗しました。デバイス番号0を使います")
		return FallbackDevice
	}
	if len(devices) == 0 {
		logger.Debug("カメラが検出されませんでした。デバイス番号0を使います")
		return FallbackDevice
	}

	num := extractDeviceNumber(devices[0])
	if num < 0 {
		return devices[0]
	}

	logger.WithFields(logrus.Fields{
		"device":     devices[0],
		"candidates": len(devices),
	}).Info("カメラを選択しました")
	return strconv.Itoa(num)
}
