package server

import (
	"errors"
	"strconv"

	"github.com/DjordjeVuckovic/kb-bench/pkg/utils"
)

// Config is bound from KBBENCH_API_* variables.
type Config struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	UseHttp2    bool     `envconfig:"USE_HTTP2"`
	CorsOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Validate checks the port and normalizes CORS origins.
func (c *Config) Validate() error {
	if c.Port == "" {
		c.Port = "8080"
	}
	if err := validatePort(c.Port); err != nil {
		return err
	}

	c.CorsOrigins = utils.RemoveEmptyStrings(c.CorsOrigins)
	if len(c.CorsOrigins) == 0 {
		c.CorsOrigins = []string{"*"}
	}
	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
