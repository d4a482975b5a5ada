package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/storage"
)

// Config is read from the environment (and an optional .env file).
type Config struct {
	GoogleAPIKey     string
	Model            string
	Addr             string
	Workers          int
	AcceptedTypes    []string
	MaxDocumentBytes int
	LogLevel         string

	// Optional side channels; empty disables them.
	DBURL       string
	RabbitMQURL string
	R2          *storage.R2Config
}

func loadConfig() (Config, error) {
	cfg := Config{
		GoogleAPIKey:     firstEnv("GOOGLE_API_KEY", "API_KEY"),
		Model:            envOr("GEMINI_MODEL", analysis.DefaultModel),
		Addr:             envOr("ADDR", ":8080"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		DBURL:            os.Getenv("DB_URL"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		Workers:          3,
		MaxDocumentBytes: documents.DefaultMaxBytes,
	}

	if v := os.Getenv("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid WORKERS %q: must be a positive integer", v)
		}
		cfg.Workers = n
	}

	if v := os.Getenv("MAX_DOCUMENT_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid MAX_DOCUMENT_MB %q: must be a positive integer", v)
		}
		cfg.MaxDocumentBytes = n << 20
	}

	types, err := documents.ParseTypes(envOr("ACCEPTED_TYPES", "pdf"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ACCEPTED_TYPES: %w", err)
	}
	cfg.AcceptedTypes = types

	r2 := storage.R2Config{
		AccountID: os.Getenv("R2_ACCOUNT_ID"),
		Bucket:    os.Getenv("R2_BUCKET"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
	}
	if r2 != (storage.R2Config{}) {
		if err := r2.Validate(); err != nil {
			return Config{}, err
		}
		cfg.R2 = &r2
	}

	return cfg, nil
}

// requireAPIKey is checked only by commands that call the model.
func (c Config) requireAPIKey() error {
	if c.GoogleAPIKey == "" {
		return errors.New("empty GOOGLE_API_KEY in environment")
	}
	return nil
}

func (c Config) policy() documents.Policy {
	return documents.NewPolicy(c.MaxDocumentBytes, c.AcceptedTypes...)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
