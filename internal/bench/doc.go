// Package bench は複数のカスケード分類器を同じ映像で比較するベンチマークの中核
//
// # 責務
// - 分類器ごとのプロファイル（表示名・色・検出数）の管理
// - フレーム取得→グレースケール化→検出→描画→表示のループ
// - 終了後の検出率レポート出力
//
// # 仕様
//   - 検出バックエンドには触れない。Source / Display / Detector インターフェース越しに扱う
//   - 単一ゴルーチンで同期的に動作する
//   - 検出数は矩形1つにつき1加算する（フレーム単位ではない）
//   - 検出率はフレームに実際の顔が1つだけ写っている環境を前提とした値で、コードでは検証しない
package bench
