package camera

import "context"

// AutoDevice は最初に見つかったカメラを使うことを表す設定値
const AutoDevice = "auto"

// FallbackDevice は検出できなかった場合に使うデバイス番号
const FallbackDevice = "0"

// Discovery はカメラデバイスの検出機能を提供する
type Discovery interface {
	// ScanDevices はシステム内の利用可能なカメラデバイスを番号順に返す
	ScanDevices(ctx context.Context) ([]string, error)

	// IsDeviceAvailable は指定されたデバイスが利用可能かチェックする
	IsDeviceAvailable(ctx context.Context, device string) bool
}
