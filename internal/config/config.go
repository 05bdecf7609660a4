package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOGLEVEL" envDefault:"info"`

	ProjectID  string `env:"PROJECTID"`
	Region     string `env:"REGION" envDefault:"us-central1"`
	GenAIModel string `env:"GENAIMODEL" envDefault:"gemini-2.0-flash"`

	LedgerURL        string        `env:"LEDGERURL,required,notEmpty"`
	LedgerAttempts   int           `env:"LEDGERATTEMPTS" envDefault:"3"`
	LedgerRetryDelay time.Duration `env:"LEDGERRETRYDELAY" envDefault:"2s"`
}

func New() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
