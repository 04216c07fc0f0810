// Package vision は gocv (OpenCV) を使った bench のバックエンド実装
//
// # 責務
// - カメラからのフレーム取得 (bench.Source)
// - プレビューウィンドウへの表示とキー入力 (bench.Display)
// - Haar カスケード分類器による顔検出 (bench.Detector)
//
// # 前提要件
//   - OpenCV 4.x と gocv のビルド環境
//     https://gocv.io/getting-started/
//   - カスケードファイル (haarcascade_frontalface_*.xml)
//     OpenCV の data/haarcascades から取得する
package vision
