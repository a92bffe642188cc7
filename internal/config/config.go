package config

import (
	"flag"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypeInMemory DBType = "inMemory"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// Тип хранилища
	DBType DBType `env:"DB" envDefault:"inMemory"`
	// Путь до файла базы для sqlite хранилища
	SQLitePath string `env:"SQLITE_PATH" envDefault:"linkstats.db"`
	// Окно скользящего лимита запросов
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	// Максимум запросов с одного IP в пределах окна
	RateLimitMax int `env:"RATE_LIMIT_MAX" envDefault:"5"`
	// Адрес сервиса геолокации по IP
	GeoAPIURL string `env:"GEO_API_URL" envDefault:"http://ip-api.com/json"`
	// Предельное время ожидания ответа геолокации
	GeoTimeout time.Duration `env:"GEO_TIMEOUT" envDefault:"2s"`
	// Запуск сервера по HTTPS с самоподписанным сертификатом
	EnableHTTPS bool `env:"ENABLE_HTTPS"`
	// Пути до PEM файлов сертификата и ключа
	CertFile string `env:"CERT_FILE" envDefault:"server.crt"`
	KeyFile  string `env:"KEY_FILE" envDefault:"server.key"`
	Logger   *logrus.Logger
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config
	logger := initLogger()

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	loadsFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	conf.Logger = logger

	// базовый адрес по умолчанию собирается из адреса сервера
	if conf.BaseURL == nil {
		scheme := "http"
		if conf.EnableHTTPS {
			scheme = "https"
		}
		conf.BaseURL = &url.URL{Scheme: scheme, Host: conf.ServerAddress}
	}
	return conf, nil
}

// MustLoadConfig аналог LoadConfig, но паникует при ошибке.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadsFlags парсит флаги командной строки.
func loadsFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запущенного сервера)"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.BoolVar(&flagsConfig.EnableHTTPS, "s", false, "Запуск сервера по HTTPS")

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress:   defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:         defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL),
		DBType:          defaultIfBlank[DBType](envConfig.DBType, flagsConfig.DBType),
		SQLitePath:      envConfig.SQLitePath,
		RateLimitWindow: envConfig.RateLimitWindow,
		RateLimitMax:    envConfig.RateLimitMax,
		GeoAPIURL:       envConfig.GeoAPIURL,
		GeoTimeout:      envConfig.GeoTimeout,
		EnableHTTPS:     envConfig.EnableHTTPS || flagsConfig.EnableHTTPS,
		CertFile:        envConfig.CertFile,
		KeyFile:         envConfig.KeyFile,
	}
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(DBType); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
