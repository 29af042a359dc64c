package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmullins/linkgen/internal/linkgen"
)

func TestConfig_New_Valid(t *testing.T) {
	cfg, err := New(
		"8080",
		"http://localhost:8080",
		"/tmp/test.db",
		5*time.Second,
		true, DefaultGeneratorConfig(),
	)

	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Verify server config
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.ServerURL)

	// Verify database config
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)

	// Verify cache config
	assert.Equal(t, 5*time.Second, cfg.Cache.SyncInterval)

	// Verify logging config
	assert.True(t, cfg.Logging.Verbose)

	// Verify generator config
	assert.Equal(t, 10, cfg.Generator.MinLength)
	assert.Equal(t, linkgen.DefaultAlphabet, cfg.Generator.Alphabet)
	assert.Equal(t, uint64(100), cfg.Generator.CounterStep)
}

func TestConfig_Validate_EmptyServerPort(t *testing.T) {
	_, err := New(
		"", // empty port
		"http://localhost:8080",
		"/tmp/test.db",
		5*time.Second,
		true, DefaultGeneratorConfig(),
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server port cannot be empty")
}

func TestConfig_Validate_EmptyServerURL(t *testing.T) {
	_, err := New(
		"8080",
		"", // empty server URL
		"/tmp/test.db",
		5*time.Second,
		true, DefaultGeneratorConfig(),
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server URL cannot be empty")
}

func TestConfig_Validate_EmptyDatabasePath(t *testing.T) {
	_, err := New(
		"8080",
		"http://localhost:8080",
		"", // empty database path
		5*time.Second,
		true, DefaultGeneratorConfig(),
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path cannot be empty")
}

func TestConfig_Validate_InvalidSyncInterval(t *testing.T) {
	testCases := []struct {
		name         string
		syncInterval time.Duration
	}{
		{"zero interval", 0},
		{"negative interval", -5 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(
				"8080",
				"http://localhost:8080",
				"/tmp/test.db",
				tc.syncInterval,
				true, DefaultGeneratorConfig(),
			)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "cache sync interval must be positive")
		})
	}
}

func TestConfig_Validate_Generator(t *testing.T) {
	t.Run("negative minimum length", func(t *testing.T) {
		genCfg := DefaultGeneratorConfig()
		genCfg.MinLength = -1

		_, err := New("8080", "http://localhost:8080", "/tmp/test.db", 5*time.Second, true, genCfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "minimum key length cannot be negative")
	})

	t.Run("zero counter step", func(t *testing.T) {
		genCfg := DefaultGeneratorConfig()
		genCfg.CounterStep = 0

		_, err := New("8080", "http://localhost:8080", "/tmp/test.db", 5*time.Second, true, genCfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "counter step must be positive")
	})

	t.Run("unknown QR payload", func(t *testing.T) {
		genCfg := DefaultGeneratorConfig()
		genCfg.QRPayload = "sticker"

		_, err := New("8080", "http://localhost:8080", "/tmp/test.db", 5*time.Second, true, genCfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "QR payload")
	})
}

func TestConfig_LinkgenConfig(t *testing.T) {
	t.Run("url payload", func(t *testing.T) {
		genCfg := DefaultGeneratorConfig()
		genCfg.Salt = "pepper"
		genCfg.InitialCounter = 42

		cfg, err := New("8080", "https://sho.rt", "/tmp/test.db", 5*time.Second, false, genCfg)
		require.NoError(t, err)

		lc := cfg.LinkgenConfig()
		assert.Equal(t, "https://sho.rt", lc.BasePath)
		assert.Equal(t, "pepper", lc.Salt)
		assert.Equal(t, 10, lc.MinLength)
		assert.Equal(t, uint64(42), lc.InitialCounter)
		assert.Equal(t, linkgen.PayloadURL, lc.QRPayload)
	})

	t.Run("key payload", func(t *testing.T) {
		genCfg := DefaultGeneratorConfig()
		genCfg.QRPayload = "key"

		cfg, err := New("8080", "https://sho.rt", "/tmp/test.db", 5*time.Second, false, genCfg)
		require.NoError(t, err)

		assert.Equal(t, linkgen.PayloadKey, cfg.LinkgenConfig().QRPayload)
	})
}

func TestConfig_RealWorldScenarios(t *testing.T) {
	t.Run("development config", func(t *testing.T) {
		cfg, err := New(
			"8080",
			"http://localhost:8080",
			"./dev.db",
			1*time.Second,
			true, DefaultGeneratorConfig(),
		)
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("production config", func(t *testing.T) {
		genCfg := DefaultGeneratorConfig()
		genCfg.Salt = "production salt"
		genCfg.CounterStep = 1000

		cfg, err := New(
			"80",
			"https://myapp.com",
			"/var/lib/myapp/links.db",
			30*time.Second,
			false,
			genCfg,
		)
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("testing config", func(t *testing.T) {
		cfg, err := New(
			"0", // Let OS assign port
			"http://localhost",
			":memory:",
			100*time.Millisecond,
			false, // No verbose logging in tests
			DefaultGeneratorConfig(),
		)
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}
