package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"cascadebench/internal/camera"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Camera   CameraConfig    `yaml:"camera"`
	Window   WindowConfig    `yaml:"window"`
	Detect   DetectConfig    `yaml:"detect"`
	Profiles []ProfileConfig `yaml:"profiles" validate:"min=1,unique=Label,dive"`
	Report   ReportConfig    `yaml:"report"`
	Log      LogConfig       `yaml:"log"`

	// CascadeDir は相対パスで指定されたカスケードファイルの基準ディレクトリ
	CascadeDir string `yaml:"cascade_dir"`
}

// CameraConfig はカメラ関連の設定
type CameraConfig struct {
	Device string `yaml:"device" validate:"required"` // "auto"、デバイス番号、またはパス
}

// WindowConfig はプレビューウィンドウの設定
type WindowConfig struct {
	Title   string        `yaml:"title" validate:"required"`
	QuitKey string        `yaml:"quit_key" validate:"len=1"` // ループを終了するキー
	KeyWait time.Duration `yaml:"key_wait" validate:"gte=1ms"`
}

// DetectConfig は検出器に渡すチューニング値
type DetectConfig struct {
	ScaleFactor  float64 `yaml:"scale_factor" validate:"gt=1"`
	MinNeighbors int     `yaml:"min_neighbors" validate:"gte=0"`
}

// ProfileConfig は1つの分類器の設定
type ProfileConfig struct {
	Label   string `yaml:"label" validate:"required"`
	Cascade string `yaml:"cascade" validate:"required"`              // カスケードファイルのパス
	Color   []int  `yaml:"color" validate:"len=3,dive,gte=0,lte=255"` // RGB
	Origin  []int  `yaml:"origin" validate:"len=2,dive,gte=0"`        // 検出数テキストの位置 (x, y)
}

// ReportConfig はレポート出力の設定
type ReportConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=trace debug info warn error"`
	File        string `yaml:"file"`         // 空ならファイル出力しない
	MaxSizeMB   int    `yaml:"max_size_mb"`  // ローテーションするサイズ
	MaxBackups  int    `yaml:"max_backups"`  // 残す世代数
	MaxAgeDays  int    `yaml:"max_age_days"` // 保持日数
	Compress    bool   `yaml:"compress"`
	ProgressLog int    `yaml:"progress_every" validate:"gte=0"` // 経過ログを出すフレーム間隔
}

// DefaultProfiles は frontalface 系の4種類のHaarカスケードを返す
func DefaultProfiles() []ProfileConfig {
	return []ProfileConfig{
		{Label: "Default", Cascade: "haarcascade_frontalface_default.xml", Color: []int{0, 0, 255}, Origin: []int{0, 20}},
		{Label: "Alt", Cascade: "haarcascade_frontalface_alt.xml", Color: []int{0, 255, 255}, Origin: []int{0, 50}},
		{Label: "Alt2", Cascade: "haarcascade_frontalface_alt2.xml", Color: []int{0, 255, 0}, Origin: []int{0, 80}},
		{Label: "AltTree", Cascade: "haarcascade_frontalface_alt_tree.xml", Color: []int{255, 0, 0}, Origin: []int{0, 110}},
	}
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Device: camera.AutoDevice,
		},
		Window: WindowConfig{
			Title:   "FACES",
			QuitKey: "q",
			KeyWait: time.Millisecond,
		},
		Detect: DetectConfig{
			ScaleFactor:  1.1,
			MinNeighbors: 5,
		},
		Profiles: DefaultProfiles(),
		Report: ReportConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:       "info",
			MaxSizeMB:   100,
			MaxBackups:  3,
			MaxAgeDays:  7,
			Compress:    true,
			ProgressLog: 300,
		},
		CascadeDir: ".",
	}
}

// Load は設定を読み込む
// CASCADEBENCH_CONFIG が設定されていればそのYAMLファイルを読み込む
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CASCADEBENCH_CONFIG"))
}

// LoadFile はデフォルト設定にYAMLファイルと環境変数を重ねて読み込む
// path が空の場合はファイルを読まない
func LoadFile(path string) (*Config, error) {
	// .env は存在しなくてもよい
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, ".env の読み込みに失敗")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "設定ファイル %s を読み込めません", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "設定ファイル %s の解析に失敗", path)
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "設定の検証に失敗")
	}

	return cfg, nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Camera.Device = getEnvOrDefault("CAMERA_DEVICE", c.Camera.Device)
	c.CascadeDir = getEnvOrDefault("CASCADE_DIR", c.CascadeDir)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)
	c.Log.ProgressLog = getEnvAsIntOrDefault("PROGRESS_EVERY", c.Log.ProgressLog)
}

var validate = validator.New()

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "無効な設定")
	}
	return nil
}

// CascadePath はプロファイルのカスケードファイルの実際のパスを返す
func (c *Config) CascadePath(p ProfileConfig) string {
	if filepath.IsAbs(p.Cascade) || c.CascadeDir == "" {
		return p.Cascade
	}
	return filepath.Join(c.CascadeDir, p.Cascade)
}

// String は設定の概要を返す
func (p ProfileConfig) String() string {
	return fmt.Sprintf("%s(%s)", p.Label, p.Cascade)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
