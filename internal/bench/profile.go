package bench

import (
	"fmt"
	"image"
	"image/color"
)

// LabelWidth はレポート行でラベルに割り当てる文字数
const LabelWidth = 20

// Profile は1つの分類器に関する情報と検出数をまとめたもの
type Profile struct {
	label    string
	color    color.RGBA
	origin   image.Point
	detector Detector
	hits     int
}

// NewProfile は新しいProfileを作成する
// detector は nil であってはならない
func NewProfile(label string, c color.RGBA, origin image.Point, detector Detector) *Profile {
	return &Profile{
		label:    label,
		color:    c,
		origin:   origin,
		detector: detector,
	}
}

// Label は表示名を返す
func (p *Profile) Label() string { return p.label }

// Color は描画色を返す
func (p *Profile) Color() color.RGBA { return p.color }

// Origin は検出数テキストの描画位置を返す
func (p *Profile) Origin() image.Point { return p.origin }

// Hits はこれまでの検出数を返す
func (p *Profile) Hits() int { return p.hits }

// RecordHit は検出数を1つ増やす。矩形1つごとに呼ぶ
func (p *Profile) RecordHit() {
	p.hits++
}

// FormatWithCount は画面表示用に "<ラベル> <検出数>" を返す
func (p *Profile) FormatWithCount() string {
	return fmt.Sprintf("%s %d", p.label, p.hits)
}

// FormatWithPercentage はレポート用の固定幅の行を返す
//
// ラベルは LabelWidth 文字に切り詰め・右パディングし、続けて
// 検出数 / totalFrames * 100 を "NNN.NNN %" の形で出力する。小数部は切り捨て。
// totalFrames が0以下の場合は割合の代わりに "N/A" を出力する。
func (p *Profile) FormatWithPercentage(totalFrames int) string {
	name := fmt.Sprintf("%-*.*s", LabelWidth, LabelWidth, p.label)
	if totalFrames <= 0 {
		return name + "N/A"
	}

	// 浮動小数点の誤差を避けるため 1/1000 % 単位の整数で計算する
	milli := int64(p.hits) * 100 * 1000 / int64(totalFrames)
	return fmt.Sprintf("%s%03d.%03d %%", name, milli/1000, milli%1000)
}

// Percentage は検出率(%)を返す。totalFrames が0以下なら false
func (p *Profile) Percentage(totalFrames int) (float64, bool) {
	if totalFrames <= 0 {
		return 0, false
	}
	return float64(p.hits) * 100 / float64(totalFrames), true
}
