package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultAnalyzerURL = "http://127.0.0.1:5000"
	DefaultMaxUploadMB = 5
	bytesPerMB         = 1024 * 1024
)

// AnalyzerConfig points at the external resume analysis backend.
type AnalyzerConfig struct {
	BaseURL        string
	Timeout        time.Duration // zero means no timeout
	MaxUploadBytes int64
}

var (
	analyzerConfig *AnalyzerConfig
	analyzerOnce   sync.Once
)

func LoadAnalyzerConfig() *AnalyzerConfig {
	analyzerOnce.Do(func() {
		analyzerConfig = analyzerConfigFromEnv(os.Getenv)
	})
	return analyzerConfig
}

func analyzerConfigFromEnv(getenv func(string) string) *AnalyzerConfig {
	cfg := &AnalyzerConfig{
		BaseURL:        strings.TrimRight(strings.TrimSpace(getenv("ANALYZER_URL")), "/"),
		MaxUploadBytes: DefaultMaxUploadMB * bytesPerMB,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAnalyzerURL
	}
	if v := strings.TrimSpace(getenv("ANALYZER_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Timeout = d
		} else {
			logrus.Warnf("ignoring invalid ANALYZER_TIMEOUT %q", v)
		}
	}
	if v := strings.TrimSpace(getenv("MAX_UPLOAD_MB")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxUploadBytes = int64(n) * bytesPerMB
		} else {
			logrus.Warnf("ignoring invalid MAX_UPLOAD_MB %q", v)
		}
	}
	return cfg
}
