package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	RateLimitMax int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			logrus.Warnf("APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "resume-scorecard"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":3000"
		}
		rateLimit := 50
		if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				rateLimit = n
			} else {
				logrus.Warnf("ignoring invalid RATE_LIMIT_MAX %q", v)
			}
		}
		appConfig = &AppConfig{
			Name:         name,
			Env:          env,
			Port:         port,
			BaseURL:      os.Getenv("APP_URL"),
			RateLimitMax: rateLimit,
		}
	})
	return appConfig
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
