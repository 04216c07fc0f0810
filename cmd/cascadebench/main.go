// Package main はカスケード分類器ベンチマークコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cascadebench/internal/app"
	"cascadebench/internal/config"
	"cascadebench/internal/logging"
)

func main() {
	// コマンドラインオプション
	var (
		configPath = flag.String("config", os.Getenv("CASCADEBENCH_CONFIG"), "設定ファイル (YAML)")
		device     = flag.String("device", "", "カメラデバイス (auto, 番号, パス)")
		format     = flag.String("format", "", "レポート形式 (text, json)")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("cascadebench")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  cascadebench [オプション]")
		fmt.Println()
		fmt.Println("プレビューウィンドウで q を押すと終了し、検出率を標準出力に表示します。")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *device != "" {
		cfg.Camera.Device = *device
	}
	if *format != "" {
		cfg.Report.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定の検証に失敗しました: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %v", err)
	}

	// Ctrl-C でも計測を終えてレポートを出す
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger).Run(ctx); err != nil {
		logger.WithError(err).Error("計測に失敗しました")
		stop()
		os.Exit(1)
	}
}
