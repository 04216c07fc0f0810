package bench

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options はセッションの動作設定
type Options struct {
	Params      DetectParams  // 検出器に渡すチューニング値
	QuitKey     byte          // ループを終了するキー
	KeyWait     time.Duration // 1フレームごとのキー待ち時間
	LogInterval int           // 経過ログを出すフレーム間隔（0で無効）
}

// DefaultOptions はデフォルトのセッション設定を返す
func DefaultOptions() Options {
	return Options{
		Params:      DefaultDetectParams(),
		QuitKey:     'q',
		KeyWait:     time.Millisecond,
		LogInterval: 300,
	}
}

// Session は1回の計測を表す
// プロファイル一覧・フレーム数・映像入力・表示先を所有する
type Session struct {
	source   Source
	display  Display
	profiles []*Profile
	opts     Options
	log      logrus.FieldLogger

	frames int
	state  State
}

// NewSession は新しいSessionを作成する
// profiles の順序が描画順とレポート順になる
func NewSession(source Source, display Display, profiles []*Profile, opts Options, logger logrus.FieldLogger) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.KeyWait <= 0 {
		opts.KeyWait = time.Millisecond
	}

	ps := make([]*Profile, len(profiles))
	copy(ps, profiles)

	return &Session{
		source:   source,
		display:  display,
		profiles: ps,
		opts:     opts,
		log:      logger,
		state:    StateIdle,
	}
}

// Frames は処理したフレーム数を返す
func (s *Session) Frames() int { return s.frames }

// State は現在の状態を返す
func (s *Session) State() State { return s.state }

// Profiles は登録順のプロファイル一覧を返す
func (s *Session) Profiles() []*Profile {
	ps := make([]*Profile, len(s.profiles))
	copy(ps, s.profiles)
	return ps
}

// Run は終了キーが押されるかコンテキストがキャンセルされるまでループする
// フレーム取得に失敗した場合は ErrDeviceUnavailable を含むエラーを返す
func (s *Session) Run(ctx context.Context) error {
	if s.state == StateStopped {
		return errors.New("終了済みのセッションは再開できません")
	}

	s.state = StateRunning
	defer func() {
		s.state = StateStopped
	}()

	s.log.WithField("profiles", len(s.profiles)).Info("計測を開始します")

	for {
		select {
		case <-ctx.Done():
			s.log.WithField("frames", s.frames).Info("シグナルにより計測を終了します")
			return nil
		default:
		}

		quit, err := s.step()
		if err != nil {
			s.log.WithError(err).WithField("frames", s.frames).Error("計測を中断しました")
			return err
		}
		if quit {
			s.log.WithField("frames", s.frames).Info("終了キーが押されました")
			return nil
		}
	}
}

// step は1フレーム分の処理を行い、終了キーが押されたかを返す
func (s *Session) step() (bool, error) {
	frame, err := s.source.Read()
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			return false, errors.Wrap(err, "フレームの取得に失敗")
		}
		return false, errors.Wrapf(ErrDeviceUnavailable, "フレームの取得に失敗: %v", err)
	}

	gray, err := frame.Grayscale()
	if err != nil {
		return false, errors.Wrap(err, "グレースケール変換に失敗")
	}

	for _, p := range s.profiles {
		frame.PutText(p.FormatWithCount(), p.origin, p.color)
	}

	s.frames++

	for _, p := range s.profiles {
		rects := p.detector.Detect(gray, s.opts.Params)
		for _, r := range rects {
			frame.Rectangle(r, p.color)
			p.RecordHit()
		}
	}

	if err := s.display.Show(frame); err != nil {
		return false, errors.Wrap(err, "フレームの表示に失敗")
	}

	s.logProgress()

	key := s.display.WaitKey(s.opts.KeyWait)
	return key >= 0 && byte(key&0xFF) == s.opts.QuitKey, nil
}

// logProgress は一定フレームごとに検出数をログに出す
func (s *Session) logProgress() {
	if s.opts.LogInterval <= 0 || s.frames%s.opts.LogInterval != 0 {
		return
	}

	fields := logrus.Fields{"frames": s.frames}
	for _, p := range s.profiles {
		fields[p.label] = p.hits
	}
	s.log.WithFields(fields).Info("計測中")
}
