package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "09:00", cfg.OpenTime)
	assert.Equal(t, "17:00", cfg.CloseTime)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPEN_TIME", "08:30")
	t.Setenv("CLOSE_TIME", "20:00")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "08:30", cfg.OpenTime)
	assert.Equal(t, "20:00", cfg.CloseTime)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}
