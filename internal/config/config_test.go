package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Environment: "development"},
			Logger: LoggerConfig{Level: "info"},
			Data:   DataConfig{BasePath: "/tmp/latateni"},
			AI:     AIConfig{DailyLimit: 20},
		}
	}

	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "testing"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := valid()
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty data path", func(t *testing.T) {
		cfg := valid()
		cfg.Data.BasePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive AI limit", func(t *testing.T) {
		cfg := valid()
		cfg.AI.DailyLimit = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{Admin: AdminConfig{Emails: []string{"head@club.dk", "Chair@Club.dk"}}}

	assert.True(t, cfg.IsAdmin("head@club.dk"))
	assert.True(t, cfg.IsAdmin("HEAD@CLUB.DK"))
	assert.True(t, cfg.IsAdmin("chair@club.dk"))
	assert.False(t, cfg.IsAdmin("coach@club.dk"))
	assert.False(t, cfg.IsAdmin(""))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a@b.dk"}, splitList("a@b.dk"))
	assert.Equal(t, []string{"a@b.dk", "c@d.dk"}, splitList(" a@b.dk , c@d.dk ,"))
}
