package bench

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	profiles := []*Profile{
		newTestProfile("Default", 40),
		newTestProfile("Alt", 55),
		newTestProfile("Alt2", 60),
		newTestProfile("AltTree", 38),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, profiles, 100))

	want := strings.Join([]string{
		pad("Default") + "040.000 %",
		pad("Alt") + "055.000 %",
		pad("Alt2") + "060.000 %",
		pad("AltTree") + "038.000 %",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReport_ZeroFrames(t *testing.T) {
	profiles := []*Profile{newTestProfile("Default", 0), newTestProfile("Alt", 0)}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, profiles, 0))
	assert.Equal(t, pad("Default")+"N/A\n"+pad("Alt")+"N/A\n", buf.String())
}

func TestWriteJSONReport(t *testing.T) {
	profiles := []*Profile{newTestProfile("Default", 40), newTestProfile("Alt", 55)}

	var buf bytes.Buffer
	require.NoError(t, WriteJSONReport(&buf, profiles, 100))

	var got Summary
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 100, got.Frames)
	require.Len(t, got.Profiles, 2)
	assert.Equal(t, "Default", got.Profiles[0].Label)
	assert.Equal(t, 40, got.Profiles[0].Hits)
	require.NotNil(t, got.Profiles[0].Percentage)
	assert.InDelta(t, 40.0, *got.Profiles[0].Percentage, 1e-9)
	assert.Equal(t, "Alt", got.Profiles[1].Label)
}

func TestWriteJSONReport_ZeroFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONReport(&buf, []*Profile{newTestProfile("Default", 0)}, 0))
	assert.Contains(t, buf.String(), `"percentage": null`)
}

func TestReport_Format(t *testing.T) {
	profiles := []*Profile{newTestProfile("Default", 1)}

	testCases := []struct {
		name      string
		format    ReportFormat
		contains  string
		expectErr bool
	}{
		{name: "テキスト", format: ReportText, contains: "100.000 %"},
		{name: "未指定はテキスト", format: "", contains: "100.000 %"},
		{name: "JSON", format: ReportJSON, contains: `"frames": 1`},
		{name: "未対応", format: "csv", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Report(&buf, tc.format, profiles, 1)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tc.contains)
		})
	}
}
