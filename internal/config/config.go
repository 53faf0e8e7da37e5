package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env  string // local, dev, prod でロガーを切り替える
	Addr string

	OpenTDB OpenTDBConfig

	QuizTTL     time.Duration // 最後に操作してからセッションを残しておく時間
	CategoryTTL time.Duration

	InboundRPS   float64 // /api が受け付ける毎秒リクエスト数
	InboundBurst int
}

type OpenTDBConfig struct {
	BaseURL         string
	RequestInterval time.Duration // OpenTDBへのリクエスト間隔
	HTTPTimeout     time.Duration
}

func Default() Config {
	return Config{
		Env:  EnvLocal,
		Addr: ":8888",
		OpenTDB: OpenTDBConfig{
			BaseURL:         "https://opentdb.com",
			RequestInterval: 5 * time.Second,
			HTTPTimeout:     10 * time.Second,
		},
		QuizTTL:      30 * time.Minute,
		CategoryTTL:  time.Hour,
		InboundRPS:   5,
		InboundBurst: 20,
	}
}

// envFileがあれば環境変数に読み込んでからConfigを作る。未設定の項目はDefaultのまま
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	var err error
	cfg.Env = stringEnv("TRIVIA_ENV", cfg.Env)
	cfg.Addr = stringEnv("TRIVIA_ADDR", cfg.Addr)
	cfg.OpenTDB.BaseURL = stringEnv("OPENTDB_BASE_URL", cfg.OpenTDB.BaseURL)
	if cfg.OpenTDB.RequestInterval, err = durationEnv("OPENTDB_REQUEST_INTERVAL", cfg.OpenTDB.RequestInterval); err != nil {
		return nil, err
	}
	if cfg.OpenTDB.HTTPTimeout, err = durationEnv("OPENTDB_HTTP_TIMEOUT", cfg.OpenTDB.HTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.QuizTTL, err = durationEnv("TRIVIA_QUIZ_TTL", cfg.QuizTTL); err != nil {
		return nil, err
	}
	if cfg.CategoryTTL, err = durationEnv("TRIVIA_CATEGORY_TTL", cfg.CategoryTTL); err != nil {
		return nil, err
	}
	if cfg.InboundRPS, err = floatEnv("TRIVIA_RATE_LIMIT", cfg.InboundRPS); err != nil {
		return nil, err
	}
	if cfg.InboundBurst, err = intEnv("TRIVIA_RATE_BURST", cfg.InboundBurst); err != nil {
		return nil, err
	}

	switch cfg.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return nil, fmt.Errorf("TRIVIA_ENV must be one of %s, %s, %s; got %q", EnvLocal, EnvDev, EnvProd, cfg.Env)
	}
	return &cfg, nil
}

func stringEnv(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
