package bench

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ReportFormat はレポートの出力形式
type ReportFormat string

const (
	ReportText ReportFormat = "text" // 固定幅テキスト
	ReportJSON ReportFormat = "json" // JSON
)

// Summary は計測結果の要約
type Summary struct {
	Frames   int              `json:"frames"`
	Profiles []ProfileSummary `json:"profiles"`
}

// ProfileSummary は1プロファイル分の計測結果
// フレーム数が0の場合 Percentage は nil
type ProfileSummary struct {
	Label      string   `json:"label"`
	Hits       int      `json:"hits"`
	Percentage *float64 `json:"percentage"`
}

// Summarize は登録順に計測結果をまとめる
func Summarize(profiles []*Profile, frames int) Summary {
	sum := Summary{
		Frames:   frames,
		Profiles: make([]ProfileSummary, 0, len(profiles)),
	}
	for _, p := range profiles {
		ps := ProfileSummary{Label: p.label, Hits: p.hits}
		if pct, ok := p.Percentage(frames); ok {
			ps.Percentage = &pct
		}
		sum.Profiles = append(sum.Profiles, ps)
	}
	return sum
}

// WriteReport はプロファイルごとに1行ずつ検出率を書き出す
func WriteReport(w io.Writer, profiles []*Profile, frames int) error {
	for _, p := range profiles {
		if _, err := fmt.Fprintln(w, p.FormatWithPercentage(frames)); err != nil {
			return errors.Wrapf(err, "レポートの書き込みに失敗 (%s)", p.label)
		}
	}
	return nil
}

// WriteJSONReport は計測結果をJSONで書き出す
func WriteJSONReport(w io.Writer, profiles []*Profile, frames int) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Summarize(profiles, frames)); err != nil {
		return errors.Wrap(err, "JSONレポートの書き込みに失敗")
	}
	return nil
}

// Report は指定形式でレポートを書き出す
func Report(w io.Writer, format ReportFormat, profiles []*Profile, frames int) error {
	switch format {
	case ReportText, "":
		return WriteReport(w, profiles, frames)
	case ReportJSON:
		return WriteJSONReport(w, profiles, frames)
	default:
		return errors.Errorf("未対応のレポート形式: %s", format)
	}
}
