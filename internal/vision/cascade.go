package vision

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"cascadebench/internal/bench"
)

// Cascade は gocv.CascadeClassifier を使った bench.Detector 実装
type Cascade struct {
	path       string
	classifier gocv.CascadeClassifier
}

// LoadCascade はカスケード定義ファイルを読み込む
func LoadCascade(path string) (*Cascade, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(bench.ErrDetectorLoad, "カスケードファイル %s: %v", path, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		_ = classifier.Close()
		return nil, errors.Wrapf(bench.ErrDetectorLoad, "カスケードファイル %s を解釈できません", path)
	}

	return &Cascade{path: path, classifier: classifier}, nil
}

// Path は読み込んだファイルのパスを返す
func (c *Cascade) Path() string {
	return c.path
}

// Detect はグレースケール画像から顔候補を検出する
// vision.Gray 以外の画像には何も返さない
func (c *Cascade) Detect(img bench.Image, params bench.DetectParams) []image.Rectangle {
	gray, ok := img.(Gray)
	if !ok || gray.mat == nil || gray.mat.Empty() {
		return nil
	}

	return c.classifier.DetectMultiScaleWithParams(
		*gray.mat,
		params.ScaleFactor, params.MinNeighbors, 0,
		image.Point{}, image.Point{},
	)
}

// Close は分類器を解放する
func (c *Cascade) Close() error {
	return c.classifier.Close()
}
