package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[Server]
port = 8080
debug = true

[Database]
driver = "mysql"
dsn = "root:@/casegen?charset=utf8mb4&parseTime=True&loc=Local"

[Session]
lifetime = "2h"

[AI]
provider = "openai"
openAIModel = "gpt-4-turbo"
mockDelay = "10ms"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_PROVIDER", "")
	defer SetConfig(Default())

	require.NoError(t, LoadConfig(path))
	c := GetConfig()
	assert.Equal(t, 8080, c.Server.Port)
	assert.True(t, c.Server.Debug)
	assert.Equal(t, "http://localhost:3000", c.Server.FrontendURL)
	assert.Equal(t, "mysql", c.Database.Driver)
	assert.Equal(t, 2*time.Hour, c.Session.Lifetime.Duration)
	assert.Equal(t, 12, c.Session.BcryptCost)
	assert.Equal(t, "openai", c.AI.Provider)
	assert.Equal(t, "sk-test", c.AI.OpenAIKey)
	assert.Equal(t, "gpt-4-turbo", c.AI.OpenAIModel)
	assert.Equal(t, 10*time.Millisecond, c.AI.MockDelay.Duration)
	assert.Equal(t, 60*time.Second, c.AI.Timeout.Duration)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	t.Setenv("PORT", "9000")
	t.Setenv("AI_PROVIDER", "mock")
	t.Setenv("DATABASE_DSN", "other.db")
	t.Setenv("SESSION_LIFETIME", "30m")
	defer SetConfig(Default())

	require.NoError(t, LoadConfig(path))
	c := GetConfig()
	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, "mock", c.AI.Provider)
	assert.Equal(t, "other.db", c.Database.DSN)
	assert.Equal(t, 30*time.Minute, c.Session.Lifetime.Duration)
}

func TestLoadConfig_Errors(t *testing.T) {
	defer SetConfig(Default())

	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.toml")))

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Session]\nlifetime = \"forever\"\n"), 0o600))
	assert.Error(t, LoadConfig(path))

	t.Setenv("PORT", "http")
	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), DefaultConfigPath)))
}
