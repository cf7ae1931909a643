package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	// Upload archive
	ArchiveUploads    bool
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool
	S3Region          string
	S3Prefix          string

	// Upload limits
	MaxFileSize int64

	// Analysis defaults for new sessions
	CategoryEnforcement bool
	SupplierCodes       models.SupplierCodes

	// Sessions
	SessionTTL           time.Duration
	SessionSweepSchedule string

	CORSAllowedOrigins []string
}

// supplierCodesFile is the layout of SUPPLIER_CODES_FILE.
type supplierCodesFile struct {
	SupplierCodes map[int]string `yaml:"supplier_codes"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", "analyzer.db"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ArchiveUploads:       getEnvAsBool("ARCHIVE_UPLOADS", false),
		S3Endpoint:           getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:        getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey:    getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:         getEnv("S3_BUCKET_NAME", "drawing-uploads"),
		S3UseSSL:             getEnvAsBool("S3_USE_SSL", false),
		S3Region:             getEnv("S3_REGION", ""),
		S3Prefix:             getEnv("S3_PREFIX", ""),
		MaxFileSize:          int64(getEnvAsInt("MAX_FILE_SIZE_MB", 20)) * 1024 * 1024,
		CategoryEnforcement:  getEnvAsBool("CATEGORY_ENFORCEMENT", true),
		SupplierCodes:        models.DefaultSupplierCodes(),
		SessionTTL:           time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		SessionSweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "*/5 * * * *"),
		CORSAllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if path := getEnv("SUPPLIER_CODES_FILE", ""); path != "" {
		codes, err := LoadSupplierCodes(path)
		if err != nil {
			return nil, err
		}
		cfg.SupplierCodes = cfg.SupplierCodes.Merge(codes)
	}
	cfg.SupplierCodes = getEnvAsCodes("SUPPLIER_CODES", cfg.SupplierCodes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if _, err := cron.ParseStandard(c.SessionSweepSchedule); err != nil {
		return fmt.Errorf("invalid SESSION_SWEEP_SCHEDULE %q: %w", c.SessionSweepSchedule, err)
	}
	if len(c.SupplierCodes) == 0 {
		return fmt.Errorf("at least one supplier code is required")
	}
	if err := c.SupplierCodes.Validate(); err != nil {
		return err
	}
	if c.ArchiveUploads && c.S3BucketName == "" {
		return fmt.Errorf("S3_BUCKET_NAME is required when ARCHIVE_UPLOADS is enabled")
	}
	return nil
}

// LoadSupplierCodes reads a YAML file of the form
//
//	supplier_codes:
//	  5: Contractor Supply / Contractor Install
func LoadSupplierCodes(path string) (models.SupplierCodes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read supplier codes file: %w", err)
	}

	var file supplierCodesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse supplier codes file: %w", err)
	}

	codes := make(models.SupplierCodes, len(file.SupplierCodes))
	for code, desc := range file.SupplierCodes {
		codes[code] = strings.TrimSpace(desc)
	}
	if err := codes.Validate(); err != nil {
		return nil, err
	}
	return codes, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// getEnvAsCodes merges entries of the form "5=Contractor Supply;7=Owner Supply / GC Install"
// over defaultValue. A malformed entry leaves defaultValue unchanged.
func getEnvAsCodes(key string, defaultValue models.SupplierCodes) models.SupplierCodes {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	overrides := make(map[int]string)
	for _, entry := range strings.Split(valueStr, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		codeStr, desc, ok := strings.Cut(entry, "=")
		if !ok {
			return defaultValue
		}
		code, err := strconv.Atoi(strings.TrimSpace(codeStr))
		if err != nil {
			return defaultValue
		}
		overrides[code] = desc
	}
	return defaultValue.Merge(overrides)
}
