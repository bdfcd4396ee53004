package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	WeightsFile  string        // optional YAML point table; defaults when empty
	Workers      int           // batch worker pool size, 0 = GOMAXPROCS
	BatchTimeout time.Duration // 0 = no budget
	RateLimitRPS float64       // per client IP, 0 disables
	RateBurst    int
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	workers, _ := strconv.Atoi(getenv("WORKERS", "0"))
	timeout, _ := time.ParseDuration(getenv("BATCH_TIMEOUT", "0s"))
	rps, _ := strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "5"), 64)
	burst, _ := strconv.Atoi(getenv("RATE_LIMIT_BURST", "10"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/match-service.log"),
		WeightsFile:  os.Getenv("WEIGHTS_FILE"),
		Workers:      workers,
		BatchTimeout: timeout,
		RateLimitRPS: rps,
		RateBurst:    burst,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
