package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "members.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "MAX_IMAGE_EDGE", "EXTRACTION_TIMEOUT", "MEMBER_PRESETS_FILE", "LOG_LEVEL", "MEMBER_KEYWORDS_CASE_SENSITIVE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8091", cfg.ServerPort)
	assert.Equal(t, 2048, cfg.Extraction.MaxImageEdge)
	assert.Equal(t, 2*time.Minute, cfg.Extraction.Timeout)
	assert.Equal(t, zapcore.InfoLevel, cfg.Observability.LogLevel)
	assert.False(t, cfg.Extraction.CaseSensitive)
	assert.Equal(t, models.DefaultEssentialKeywords(), cfg.Extraction.EssentialWords)
	assert.Empty(t, cfg.Extraction.Presets)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MAX_IMAGE_EDGE", "1024")
	t.Setenv("EXTRACTION_TIMEOUT", "45s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MEMBER_KEYWORDS_CASE_SENSITIVE", "true")
	t.Setenv("MEMBER_PRESETS_FILE", writeFile(t, `
members:
  - name: 지수
    keywords: [카페, 베이커리]
  - name: 민호
    keywords: [오름]
essentials:
  airport: [공항]
  lodging: [리조트]
`))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 1024, cfg.Extraction.MaxImageEdge)
	assert.Equal(t, 45*time.Second, cfg.Extraction.Timeout)
	assert.Equal(t, zapcore.DebugLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Extraction.CaseSensitive)
	assert.Equal(t, []models.MemberPreset{
		{Name: "지수", Keywords: []string{"카페", "베이커리"}},
		{Name: "민호", Keywords: []string{"오름"}},
	}, cfg.Extraction.Presets)
	assert.Equal(t, []string{"리조트"}, cfg.Extraction.EssentialWords.Lodging)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad edge", "MAX_IMAGE_EDGE", "big"},
		{"negative edge", "MAX_IMAGE_EDGE", "-1"},
		{"bad timeout", "EXTRACTION_TIMEOUT", "soon"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"missing presets", "MEMBER_PRESETS_FILE", "/does/not/exist.yaml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadPresetsRejectsDuplicates(t *testing.T) {
	_, _, err := LoadPresets(writeFile(t, "members:\n  - name: A\n  - name: A\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, _, err = LoadPresets(writeFile(t, "members:\n  - keywords: [x]\n"))
	assert.ErrorContains(t, err, "without a name")
}
