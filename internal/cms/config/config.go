// Конфигурация сервиса из переменных окружения.
//
// Основные возможности:
//   - Загрузка значений по тегам env у полей Config.
//   - Маскировка секретных значений в логах.
//   - Значения по умолчанию и проверка адресов.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/listedit"
)

const (
	DefaultListenAddr   = ":8080"
	DefaultMetricsAddr  = ":2112"
	DefaultDatabaseDSN  = "cms.db"
	DefaultDraftTTLDays = 30
	DefaultBodyLimit    = "5M"
)

type Config struct {
	WebURLRaw string `env:"WEB_URL"`
	WebURL    *url.URL

	ListenAddr  string `env:"LISTEN_ADDR"`
	MetricsAddr string `env:"METRICS_ADDR"`

	DatabaseDSN string `env:"DATABASE_URL"`

	AWSEndpoint   string `env:"AWS_S3_ENDPOINT_URL"`
	AWSAccessKey  string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSBucketName string `env:"AWS_S3_BUCKET_NAME"`
	AWSUseSSL     bool   `env:"AWS_S3_USE_SSL"`

	ArticlesAPIURL string `env:"ARTICLES_API_URL"`

	DraftTTLDays       int    `env:"DRAFT_TTL_DAYS"`
	ListCollapseRaw    string `env:"LIST_COLLAPSE_POLICY"`
	ListCollapsePolicy listedit.CollapsePolicy

	PreviewSanitize bool   `env:"PREVIEW_SANITIZE"`
	BodyLimit       string `env:"BODY_LIMIT"`
}

// DraftTTL - срок хранения черновика без обновлений.
func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.DraftTTLDays) * 24 * time.Hour
}

// S3Enabled сообщает, задано ли S3-хранилище для файлов черновиков.
func (c *Config) S3Enabled() bool {
	return c.AWSEndpoint != "" && c.AWSBucketName != ""
}

// ReadConfig загружает конфигурацию и завершает процесс, если она некорректна.
func ReadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("Read config", "err", err)
		os.Exit(1)
	}
	return cfg
}

// LoadConfig загружает конфигурацию из окружения. WEB_URL обязателен.
func LoadConfig() (*Config, error) {
	cfg := &Config{PreviewSanitize: true}

	envConfig("env", cfg)

	if cfg.WebURLRaw == "" {
		return nil, errors.New("WEB_URL is required")
	}
	u, err := url.Parse(cfg.WebURLRaw)
	if err != nil {
		return nil, fmt.Errorf("WEB_URL incorrect: %w", err)
	}
	cfg.WebURL = u

	if cfg.ArticlesAPIURL != "" {
		if _, err := url.Parse(cfg.ArticlesAPIURL); err != nil {
			return nil, fmt.Errorf("ARTICLES_API_URL incorrect: %w", err)
		}
	}

	cfg.ListCollapsePolicy, err = listedit.ParseCollapsePolicy(cfg.ListCollapseRaw)
	if err != nil {
		return nil, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = DefaultDatabaseDSN
	}
	if cfg.DraftTTLDays <= 0 {
		cfg.DraftTTLDays = DefaultDraftTTLDays
	}
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = DefaultBodyLimit
	}
	return cfg, nil
}

// Присваивает полям структуры значения переменных окружения из тега key.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if fEnvTag == "" || !Exist(fEnvTag) {
			continue
		}

		raw := GetEnv(fEnvTag)
		if raw == "" {
			continue
		}

		logValue := raw
		if isSecret(fName) {
			logValue = maskSecret(raw)
		}
		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", logValue),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(raw)
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
}

func isSecret(name string) bool {
	name = strings.ToLower(name)
	for _, s := range []string{"pass", "secret", "token", "key"} {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// maskSecret оставляет первый и последний символ значения.
func maskSecret(v string) string {
	r := []rune(v)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
