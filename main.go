package main

import (
	"context"
	"log"
	"os"

	"cascadebench/internal/app"
	"cascadebench/internal/config"
	"cascadebench/internal/logging"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ロガーを作成
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %v", err)
	}

	// 計測を実行
	if err := app.New(cfg, logger).Run(context.Background()); err != nil {
		logger.WithError(err).Error("計測に失敗しました")
		os.Exit(1)
	}
}
