package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	t.Setenv("CASCADEBENCH_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg == nil {
		t.Fatal("設定がnilです")
	}

	// カメラ設定の検証
	if cfg.Camera.Device == "" {
		t.Error("カメラデバイスが設定されていません")
	}

	// ウィンドウ設定の検証
	if cfg.Window.Title != "FACES" {
		t.Errorf("ウィンドウタイトルが一致しません: got %s, want FACES", cfg.Window.Title)
	}
	if cfg.Window.QuitKey != "q" {
		t.Errorf("終了キーが一致しません: got %s, want q", cfg.Window.QuitKey)
	}
	if cfg.Window.KeyWait != time.Millisecond {
		t.Errorf("キー待ち時間が一致しません: got %s", cfg.Window.KeyWait)
	}

	// 検出パラメータの検証
	if cfg.Detect.ScaleFactor != 1.1 {
		t.Errorf("スケールファクターが一致しません: got %v, want 1.1", cfg.Detect.ScaleFactor)
	}
	if cfg.Detect.MinNeighbors != 5 {
		t.Errorf("最小近傍数が一致しません: got %d, want 5", cfg.Detect.MinNeighbors)
	}

	// プロファイルは登録順
	want := []string{"Default", "Alt", "Alt2", "AltTree"}
	if len(cfg.Profiles) != len(want) {
		t.Fatalf("プロファイル数が一致しません: got %d, want %d", len(cfg.Profiles), len(want))
	}
	for i, label := range want {
		if cfg.Profiles[i].Label != label {
			t.Errorf("プロファイル %d のラベルが一致しません: got %s, want %s", i, cfg.Profiles[i].Label, label)
		}
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:      "正常な設定",
			modify:    func(_ *Config) {},
			expectErr: false,
		},
		{
			name:      "プロファイルなし",
			modify:    func(c *Config) { c.Profiles = nil },
			expectErr: true,
		},
		{
			name: "ラベルの重複",
			modify: func(c *Config) {
				c.Profiles[1].Label = c.Profiles[0].Label
			},
			expectErr: true,
		},
		{
			name:      "ラベルなし",
			modify:    func(c *Config) { c.Profiles[0].Label = "" },
			expectErr: true,
		},
		{
			name:      "カスケードファイルなし",
			modify:    func(c *Config) { c.Profiles[2].Cascade = "" },
			expectErr: true,
		},
		{
			name:      "色の要素数が不正",
			modify:    func(c *Config) { c.Profiles[0].Color = []int{255, 0} },
			expectErr: true,
		},
		{
			name:      "色の範囲外",
			modify:    func(c *Config) { c.Profiles[0].Color = []int{256, 0, 0} },
			expectErr: true,
		},
		{
			name:      "負の描画位置",
			modify:    func(c *Config) { c.Profiles[0].Origin = []int{-1, 20} },
			expectErr: true,
		},
		{
			name:      "終了キーが複数文字",
			modify:    func(c *Config) { c.Window.QuitKey = "qq" },
			expectErr: true,
		},
		{
			name:      "スケールファクターが1以下",
			modify:    func(c *Config) { c.Detect.ScaleFactor = 1.0 },
			expectErr: true,
		},
		{
			name:      "未対応のレポート形式",
			modify:    func(c *Config) { c.Report.Format = "csv" },
			expectErr: true,
		},
		{
			name:      "未対応のログレベル",
			modify:    func(c *Config) { c.Log.Level = "verbose" },
			expectErr: true,
		},
		{
			name:      "カメラデバイスなし",
			modify:    func(c *Config) { c.Camera.Device = "" },
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestLoadFile はYAMLファイルからの読み込みをテストする
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")

	content := `
camera:
  device: "1"
window:
  key_wait: 5ms
detect:
  min_neighbors: 3
profiles:
  - label: LBP
    cascade: lbpcascade_frontalface.xml
    color: [255, 0, 255]
    origin: [0, 20]
report:
  format: json
cascade_dir: /opt/opencv/data
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Camera.Device != "1" {
		t.Errorf("カメラデバイスが反映されていません: got %s", cfg.Camera.Device)
	}
	if cfg.Window.KeyWait != 5*time.Millisecond {
		t.Errorf("キー待ち時間が反映されていません: got %s", cfg.Window.KeyWait)
	}
	// 指定していない値はデフォルトのまま
	if cfg.Window.Title != "FACES" {
		t.Errorf("ウィンドウタイトルが変わっています: got %s", cfg.Window.Title)
	}
	if cfg.Detect.ScaleFactor != 1.1 || cfg.Detect.MinNeighbors != 3 {
		t.Errorf("検出パラメータが一致しません: got %+v", cfg.Detect)
	}
	if len(cfg.Profiles) != 1 || cfg.Profiles[0].Label != "LBP" {
		t.Fatalf("プロファイルが置き換えられていません: got %v", cfg.Profiles)
	}
	if cfg.Report.Format != "json" {
		t.Errorf("レポート形式が反映されていません: got %s", cfg.Report.Format)
	}

	expected := filepath.Join("/opt/opencv/data", "lbpcascade_frontalface.xml")
	if got := cfg.CascadePath(cfg.Profiles[0]); got != expected {
		t.Errorf("カスケードファイルのパスが一致しません: got %s, want %s", got, expected)
	}
}

// TestLoadFileErrors は読み込みエラーをテストする
func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	invalidYAML := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalidYAML, []byte("profiles: [:"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	invalidValue := filepath.Join(dir, "invalid_value.yaml")
	if err := os.WriteFile(invalidValue, []byte("window:\n  quit_key: esc\n"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), invalidYAML, invalidValue} {
		if _, err := LoadFile(path); err == nil {
			t.Errorf("エラーが期待されましたが、エラーが発生しませんでした: %s", path)
		}
	}
}

// TestCascadePath はカスケードファイルのパス解決をテストする
func TestCascadePath(t *testing.T) {
	cfg := Default()
	cfg.CascadeDir = "data"

	relative := ProfileConfig{Cascade: "haarcascade_frontalface_alt.xml"}
	if got := cfg.CascadePath(relative); got != filepath.Join("data", "haarcascade_frontalface_alt.xml") {
		t.Errorf("相対パスが解決されていません: got %s", got)
	}

	absolute := ProfileConfig{Cascade: "/usr/share/opencv4/haarcascades/haarcascade_frontalface_alt.xml"}
	if got := cfg.CascadePath(absolute); got != absolute.Cascade {
		t.Errorf("絶対パスが変更されています: got %s", got)
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
// 注意: このテストは環境変数を変更するため、parallelは使わない
func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("CASCADEBENCH_CONFIG", "")
	t.Setenv("CAMERA_DEVICE", "2")
	t.Setenv("CASCADE_DIR", "/tmp/cascades")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROGRESS_EVERY", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Camera.Device != "2" {
		t.Errorf("環境変数のデバイスが反映されていません: got %s, want 2", cfg.Camera.Device)
	}
	if cfg.CascadeDir != "/tmp/cascades" {
		t.Errorf("環境変数のカスケードディレクトリが反映されていません: got %s", cfg.CascadeDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("環境変数のログレベルが反映されていません: got %s, want debug", cfg.Log.Level)
	}
	if cfg.Log.ProgressLog != 30 {
		t.Errorf("環境変数の経過ログ間隔が反映されていません: got %d, want 30", cfg.Log.ProgressLog)
	}
}
