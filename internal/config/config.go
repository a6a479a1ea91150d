package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	Port      int           `env:"PORT" envDefault:"8080"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv    string        `env:"APP_ENV" envDefault:"production"`

	// Agencies seeds the agency directory, one "number:name" pair per entry.
	Agencies []string `env:"AGENCIES" envSeparator:"," envDefault:"0001:Matriz"`

	OperatorEmail        string `env:"OPERATOR_EMAIL"`
	OperatorName         string `env:"OPERATOR_NAME" envDefault:"Operator"`
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH"`
	OperatorAgency       string `env:"OPERATOR_AGENCY" envDefault:"0001"`
}

type AgencySeed struct {
	Number string
	Name   string
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if (cfg.OperatorEmail == "") != (cfg.OperatorPasswordHash == "") {
		return nil, fmt.Errorf("config.Load: OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH must be set together")
	}
	return &cfg, nil
}

func (c *Config) AgencySeeds() ([]AgencySeed, error) {
	seeds := make([]AgencySeed, 0, len(c.Agencies))
	for _, entry := range c.Agencies {
		number, name, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || number == "" || name == "" {
			return nil, fmt.Errorf("AgencySeeds: malformed entry %q, want number:name", entry)
		}
		seeds = append(seeds, AgencySeed{Number: number, Name: name})
	}
	return seeds, nil
}
