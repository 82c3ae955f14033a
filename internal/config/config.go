package config

import (
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nero-collectibles/kassa/pkg/logger"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every env-driven value used by the application. Only this
// struct may be used to read configuration, no direct access to env or
// any other config source should be made elsewhere.
type Config struct {
	AppEnv   string `env:"APP_ENV" default:"dev"`
	AppName  string `env:"APP_NAME" default:"kassa"`
	AppDebug bool   `env:"APP_DEBUG" default:"1"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR" default:":8080"`

	// one SQLite file holds the whole ledger
	StoragePath string `env:"STORAGE_PATH" default:"kassa.db"`

	MetricsEnable     bool   `env:"METRICS_ENABLE"`
	MetricsListenAddr string `env:"METRICS_LISTEN_ADDR" default:":9090"`
	MetricsURI        string `env:"METRICS_URI" default:"/metrics"`
	PromNamespace     string `env:"PROM_NAMESPACE" default:"kassa"`

	MailerHost      string `env:"MAILER_HOST"`
	MailerPort      int    `env:"MAILER_PORT" default:"587"`
	MailerLogin     string `env:"MAILER_LOGIN"`
	MailerPassword  string `env:"MAILER_PASSWORD"`
	MailerFrom      string `env:"MAILER_FROM"`
	MailerFromName  string `env:"MAILER_FROM_NAME"`
	MailerWorkers   int    `env:"MAILER_WORKERS" default:"2"`
	MailerQueueSize int    `env:"MAILER_QUEUE_SIZE" default:"32"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
