// Package camera 計測に使うカメラデバイスの選択を担う
//
// # 責務
// - V4L2デバイスの検出（デバイス番号順）
// - 設定値 "auto" から OpenCV に渡すデバイス番号への解決
//
// # 仕様
//   - Linux では /dev/video* を番号順に走査し、開けるものを候補とする
//   - 候補がない環境（macOS など）ではデバイス番号 0 にフォールバックする
//   - 明示的に指定されたデバイスはそのまま使う
//
// # 前提要件
//   - videoグループへの参加: デバイスアクセス権限
//     sudo usermod -a -G video $USER
package camera
