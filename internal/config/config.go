package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"openstruct/internal/calc/shear"
)

type Config struct {
	Addr        string
	TLSCertFile string
	TLSKeyFile  string
	CORSOrigin  string
	LogLevel    string

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
	BatchWorkers    int

	// Safety factors applied when a beam request leaves them out.
	Factors     shear.Factors
	FactorsFile string // empty when the defaults are in use
}

// TLS reports whether both certificate and key are configured.
func (c *Config) TLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Addr:        getEnv("ADDR", ":8080"),
		TLSCertFile: os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:  os.Getenv("TLS_KEY_FILE"),
		CORSOrigin:  getEnv("CORS_ALLOWED_ORIGIN", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "inf"),
		Factors:     shear.DefaultFactors(),
	}

	var err error
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.BatchWorkers, err = getEnvInt("BATCH_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	if path := os.Getenv("SAFETY_FACTORS_FILE"); path != "" {
		if cfg.Factors, err = LoadFactors(path, cfg.Factors); err != nil {
			return nil, err
		}
		cfg.FactorsFile = path
	}

	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", cfg.RateLimitBurst)
	}
	if cfg.BatchWorkers < 1 {
		return nil, fmt.Errorf("BATCH_WORKERS must be at least 1, got %d", cfg.BatchWorkers)
	}
	if !slices.Contains(LogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("LOG_LEVEL must be one of %v, got %q", LogLevels, cfg.LogLevel)
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return cfg, nil
}

// LoadFactors reads a YAML file with gama_c, gama_c2 and gama_s. Keys missing
// from the file keep the values of base.
func LoadFactors(path string, base shear.Factors) (shear.Factors, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read safety factors: %w", err)
	}
	f := base
	if err := yaml.Unmarshal(b, &f); err != nil {
		return base, fmt.Errorf("parse safety factors %s: %w", path, err)
	}
	for name, v := range map[string]float64{"gama_c": f.GamaC, "gama_c2": f.GamaC2, "gama_s": f.GamaS} {
		if !(v > 0) {
			return base, fmt.Errorf("safety factor %s must be positive, got %v", name, v)
		}
	}
	return f, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
