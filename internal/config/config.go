package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация бота, загружаемая из config.toml.
// Секреты (токен бота) передаются через окружение, не через файл.
type Config struct {
	Telegram TelegramConfig `toml:"telegram"`
	Calendar CalendarConfig `toml:"calendar"`
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type TelegramConfig struct {
	// TokenEnv имя переменной окружения с токеном бота
	TokenEnv string `toml:"token_env"`
	// PollTimeout таймаут long polling в секундах
	PollTimeout int `toml:"poll_timeout"`
	Debug       bool `toml:"debug"`
}

// CalendarConfig настройки календарей по коммунам
type CalendarConfig struct {
	American CommuneCalendar `toml:"american"`
	German   CommuneCalendar `toml:"german"`
	// RequestTimeout таймаут одного вызова Calendar API в секундах
	RequestTimeout int `toml:"request_timeout"`
}

// CommuneCalendar календарь одной коммуны: каталог с credentials.json
// и token.json плюс идентификатор календаря
type CommuneCalendar struct {
	ConfigDir  string `toml:"config_dir"`
	CalendarID string `toml:"calendar_id"`
}

type ServerConfig struct {
	// HTTPPort порт служебного HTTP-сервера (/metrics, /healthz)
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Telegram.TokenEnv == "" {
		cfg.Telegram.TokenEnv = "TELEGRAM_BOT_TOKEN"
	}
	if cfg.Telegram.PollTimeout <= 0 {
		cfg.Telegram.PollTimeout = 30
	}
	if cfg.Calendar.RequestTimeout <= 0 {
		cfg.Calendar.RequestTimeout = 30
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "ev-registration-bot"
	}

	if cfg.Calendar.American.ConfigDir == "" || cfg.Calendar.German.ConfigDir == "" {
		return nil, fmt.Errorf("config: calendar config_dir must be set for both communes")
	}
	if cfg.Calendar.American.CalendarID == "" {
		cfg.Calendar.American.CalendarID = "primary"
	}
	if cfg.Calendar.German.CalendarID == "" {
		cfg.Calendar.German.CalendarID = "primary"
	}

	return cfg, nil
}

// BotToken возвращает токен бота из окружения
func (c *Config) BotToken() (string, error) {
	token := os.Getenv(c.Telegram.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("config: %s is not set", c.Telegram.TokenEnv)
	}
	return token, nil
}
