// Сервер редактора контента: HTTP API конвертации, предпросмотра, черновиков и работы со статьями.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms"
	"github.com/fardilk/fardil-cms-site/internal/cms/config"
	"github.com/fardilk/fardil-cms-site/internal/cms/draft"
	"github.com/fardilk/fardil-cms-site/internal/cms/gormlogger"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var version string = "DEV"

// Пример запуска: go run ./cmd/cms --trace
func main() {
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	trace := flag.Bool("trace", false, "Verbose logs and sql trace")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("CMS start.")

	db, err := gorm.Open(dialector(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.NewGormLogger(slog.Default(), time.Second*4, *paramQueries),
	})
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Fail set settings to conn pool", "err", err)
		os.Exit(1)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	var blobs draft.BlobStore
	if cfg.S3Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		blobs, err = draft.NewMinioBlobStore(ctx, cfg.AWSEndpoint, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSUseSSL, cfg.AWSBucketName)
		cancel()
		if err != nil {
			slog.Error("Fail init Minio connection", "err", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("S3 storage is not configured, draft files are kept in memory")
		blobs = draft.NewMemoryBlobStore()
	}

	cms.Server(db, blobs, cfg, version)
}

// dialector выбирает драйвер по DSN: postgres для URL и key=value строк, иначе путь к файлу sqlite.
func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: false,
		})
	}
	return sqlite.Open(dsn)
}

func PrintBanner() {
	banner := `
  ____ __  __ ____
 / ___|  \/  / ___|
| |   | |\/| \___ \
| |___| |  | |___) |
 \____|_|  |_|____/  %s
Visual content editor backend
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
