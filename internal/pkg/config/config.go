package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ExtractionConfig struct {
	MaxImageEdge   int
	Timeout        time.Duration
	RatePerMinute  int
	CacheTTL       time.Duration
	CaseSensitive  bool
	PresetsFile    string
	Presets        []models.MemberPreset
	EssentialWords models.EssentialKeywords
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	MetricsAddr  string
	PprofAddr    string
	LogLevel     zapcore.Level
}

type Config struct {
	ServerPort    string
	Gemini        GeminiConfig
	Extraction    ExtractionConfig
	Observability ObservabilityConfig
}

// presetsFile is the on-disk shape of MEMBER_PRESETS_FILE.
type presetsFile struct {
	Members    []models.MemberPreset     `yaml:"members"`
	Essentials *models.EssentialKeywords `yaml:"essentials"`
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		Gemini: GeminiConfig{
			APIKey: getEnvOrDefault("GEMINI_API_KEY", ""),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
		Extraction: ExtractionConfig{
			PresetsFile:    getEnvOrDefault("MEMBER_PRESETS_FILE", ""),
			EssentialWords: models.DefaultEssentialKeywords(),
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
		},
	}

	var err error
	if cfg.Extraction.MaxImageEdge, err = getEnvInt("MAX_IMAGE_EDGE", 2048); err != nil {
		return nil, err
	}
	if cfg.Extraction.RatePerMinute, err = getEnvInt("EXTRACT_RATE_PER_MINUTE", 6); err != nil {
		return nil, err
	}
	if cfg.Extraction.Timeout, err = getEnvDuration("EXTRACTION_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Extraction.CacheTTL, err = getEnvDuration("EXTRACTION_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Extraction.CaseSensitive, err = strconv.ParseBool(getEnvOrDefault("MEMBER_KEYWORDS_CASE_SENSITIVE", "false")); err != nil {
		return nil, fmt.Errorf("MEMBER_KEYWORDS_CASE_SENSITIVE: %w", err)
	}
	if cfg.Observability.LogLevel, err = zapcore.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.Extraction.PresetsFile != "" {
		members, essentials, err := LoadPresets(cfg.Extraction.PresetsFile)
		if err != nil {
			return nil, err
		}
		cfg.Extraction.Presets = members
		if essentials != nil {
			cfg.Extraction.EssentialWords = *essentials
		}
	}

	return cfg, nil
}

// LoadPresets reads the member presets YAML. Members keep file order since
// vote order follows it.
func LoadPresets(path string) ([]models.MemberPreset, *models.EssentialKeywords, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read member presets: %w", err)
	}
	var f presetsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse member presets %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(f.Members))
	members := make([]models.MemberPreset, 0, len(f.Members))
	for _, m := range f.Members {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return nil, nil, fmt.Errorf("member presets %s: member without a name", path)
		}
		if _, dup := seen[m.Name]; dup {
			return nil, nil, fmt.Errorf("member presets %s: duplicate member %q", path, m.Name)
		}
		seen[m.Name] = struct{}{}
		members = append(members, m)
	}
	return members, f.Essentials, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
