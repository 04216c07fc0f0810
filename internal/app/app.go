// Package app は設定から計測セッションを組み立てて実行する
package app

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cascadebench/internal/bench"
	"cascadebench/internal/camera"
	"cascadebench/internal/config"
)

// Option は App の生成オプション
type Option func(*App)

// WithBackend はバックエンドを差し替える
func WithBackend(b Backend) Option {
	return func(a *App) {
		a.backend = b
	}
}

// WithDiscovery はカメラ検出を差し替える
func WithDiscovery(d camera.Discovery) Option {
	return func(a *App) {
		a.discovery = d
	}
}

// WithOutput はレポートの出力先を差し替える
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// App は1回の計測を実行する
type App struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	backend   Backend
	discovery camera.Discovery
	out       io.Writer
}

// New は新しいAppを作成する
func New(cfg *config.Config, logger logrus.FieldLogger, opts ...Option) *App {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	a := &App{
		cfg:       cfg,
		log:       logger,
		backend:   NewGocvBackend(),
		discovery: camera.NewLinuxDiscovery(),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run は検出器・カメラ・ウィンドウを用意して計測し、レポートを出力する
//
// 確保した資源は正常終了・エラーのいずれでも解放する。
// フレーム取得に失敗した場合も、1フレーム以上処理していればレポートを出力してからエラーを返す。
func (a *App) Run(ctx context.Context) error {
	log := a.log.WithField("session_id", uuid.NewString())

	var closers []namedCloser
	defer func() {
		// 確保と逆順に解放する
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].closer.Close(); err != nil {
				log.WithError(err).WithField("resource", closers[i].name).Warn("資源の解放に失敗しました")
			}
		}
	}()

	profiles := make([]*bench.Profile, 0, len(a.cfg.Profiles))
	for _, pc := range a.cfg.Profiles {
		path := a.cfg.CascadePath(pc)
		detector, err := a.backend.LoadDetector(path)
		if err != nil {
			return errors.Wrapf(err, "プロファイル %s", pc.Label)
		}
		closers = append(closers, namedCloser{name: pc.Label, closer: detector})

		profiles = append(profiles, newProfile(pc, detector))
		log.WithFields(logrus.Fields{"label": pc.Label, "cascade": path}).Debug("検出器を読み込みました")
	}

	device := camera.ResolveDevice(ctx, a.discovery, a.cfg.Camera.Device, log)
	source, err := a.backend.OpenSource(device)
	if err != nil {
		return errors.Wrap(err, "カメラの初期化に失敗")
	}
	closers = append(closers, namedCloser{name: "camera", closer: source})

	display, err := a.backend.OpenDisplay(a.cfg.Window.Title)
	if err != nil {
		return errors.Wrap(err, "ウィンドウの初期化に失敗")
	}
	closers = append(closers, namedCloser{name: "window", closer: display})

	session := bench.NewSession(source, display, profiles, a.sessionOptions(), log)
	runErr := session.Run(ctx)

	if runErr != nil && session.Frames() == 0 {
		return runErr
	}

	format := bench.ReportFormat(a.cfg.Report.Format)
	if err := bench.Report(a.out, format, session.Profiles(), session.Frames()); err != nil {
		if runErr != nil {
			return runErr
		}
		return err
	}

	return runErr
}

// sessionOptions は設定からセッションの動作設定を作る
func (a *App) sessionOptions() bench.Options {
	return bench.Options{
		Params: bench.DetectParams{
			ScaleFactor:  a.cfg.Detect.ScaleFactor,
			MinNeighbors: a.cfg.Detect.MinNeighbors,
		},
		QuitKey:     a.cfg.Window.QuitKey[0],
		KeyWait:     a.cfg.Window.KeyWait,
		LogInterval: a.cfg.Log.ProgressLog,
	}
}

// newProfile は設定値から Profile を作る
func newProfile(pc config.ProfileConfig, detector bench.Detector) *bench.Profile {
	c := color.RGBA{R: uint8(pc.Color[0]), G: uint8(pc.Color[1]), B: uint8(pc.Color[2]), A: 255}
	origin := image.Pt(pc.Origin[0], pc.Origin[1])
	return bench.NewProfile(pc.Label, c, origin, detector)
}

type namedCloser struct {
	name   string
	closer io.Closer
}
