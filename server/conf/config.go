package conf

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/casegen/casegen/server/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DefaultConfigPath = "casegen.toml"
	defaultEnvFile    = ".env"
)

type Config struct {
	Server   ServerConfig   `toml:"Server"`
	Database DatabaseConfig `toml:"Database"`
	Session  SessionConfig  `toml:"Session"`
	AI       AIConfig       `toml:"AI"`
}

type ServerConfig struct {
	Port        int    `toml:"port"`
	Debug       bool   `toml:"debug"`
	FrontendURL string `toml:"frontendURL"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type SessionConfig struct {
	Lifetime   Duration `toml:"lifetime"`
	BcryptCost int      `toml:"bcryptCost"`
}

type AIConfig struct {
	// openai, huggingface, gemini or mock. Empty picks the first backend with a key.
	Provider         string   `toml:"provider"`
	OpenAIKey        string   `toml:"openAIKey"`
	OpenAIModel      string   `toml:"openAIModel"`
	OpenAIBaseURL    string   `toml:"openAIBaseURL"`
	HuggingFaceKey   string   `toml:"huggingFaceKey"`
	HuggingFaceModel string   `toml:"huggingFaceModel"`
	HuggingFaceURL   string   `toml:"huggingFaceURL"`
	GeminiKey        string   `toml:"geminiKey"`
	GeminiModel      string   `toml:"geminiModel"`
	MockDelay        Duration `toml:"mockDelay"`
	Timeout          Duration `toml:"timeout"`
}

// Duration reads "24h" style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = v
	return nil
}

var cfg = Default()

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			FrontendURL: "http://localhost:3000",
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "casegen.db",
		},
		Session: SessionConfig{
			Lifetime:   Duration{24 * time.Hour},
			BcryptCost: 12,
		},
		AI: AIConfig{
			MockDelay: Duration{time.Second},
			Timeout:   Duration{60 * time.Second},
		},
	}
}

// LoadConfig reads path (if it exists), then the .env file, then the environment.
func LoadConfig(path string) error {
	c := Default()
	if path == "" {
		path = DefaultString(os.Getenv("CASEGEN_CONFIG"), DefaultConfigPath)
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, c); err != nil {
			logger.AppLog.Errorf("load config error: %+v", err)
			return errors.Wrapf(err, "decode %v", path)
		}
	} else if path != DefaultConfigPath {
		return errors.Wrapf(err, "config file %v", path)
	}

	if err := godotenv.Load(defaultEnvFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "load .env")
	}

	if err := applyEnv(c); err != nil {
		return err
	}

	cfg = c
	return nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "PORT")
		}
		c.Server.Port = p
	}
	if v := os.Getenv("SESSION_LIFETIME"); v != "" {
		if err := c.Session.Lifetime.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(err, "SESSION_LIFETIME")
		}
	}

	c.Server.FrontendURL = DefaultString(os.Getenv("FRONTEND_URL"), c.Server.FrontendURL)
	c.Database.Driver = DefaultString(os.Getenv("DATABASE_DRIVER"), c.Database.Driver)
	c.Database.DSN = DefaultString(os.Getenv("DATABASE_DSN"), c.Database.DSN)
	c.AI.Provider = DefaultString(os.Getenv("AI_PROVIDER"), c.AI.Provider)
	c.AI.OpenAIKey = DefaultString(os.Getenv("OPENAI_API_KEY"), c.AI.OpenAIKey)
	c.AI.HuggingFaceKey = DefaultString(os.Getenv("HUGGINGFACE_API_KEY"), c.AI.HuggingFaceKey)
	c.AI.GeminiKey = DefaultString(os.Getenv("GEMINI_API_KEY"), c.AI.GeminiKey)
	return nil
}

func GetConfig() *Config {
	return cfg
}

// SetConfig replaces the process wide config. Used by tests and the CLI.
func SetConfig(c *Config) {
	cfg = c
}

func DefaultString(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
