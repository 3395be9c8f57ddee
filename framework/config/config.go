package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	Container ContainerConfig
	Log       LogConfig
	Inspect   InspectConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

// ContainerConfig locates the alias table handed to the container.
type ContainerConfig struct {
	Bindings string // .env, .toml, .yaml or .yml
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// InspectConfig configures the read-only inspection server.
type InspectConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	appEnv := env("APP_ENV", "local")
	format := "console"
	if appEnv == "production" {
		format = "json"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "autowire"),
			Env:   appEnv,
			Debug: GetBool("APP_DEBUG", true),
		},
		Container: ContainerConfig{
			Bindings: env("AUTOWIRE_BINDINGS", "bindings.env"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(env("LOG_LEVEL", "info")),
			Format: strings.ToLower(env("LOG_FORMAT", format)),
		},
		Inspect: InspectConfig{
			Addr:            env("INSPECT_ADDR", ":8089"),
			ShutdownTimeout: time.Duration(GetInt("INSPECT_SHUTDOWN_TIMEOUT", 10)) * time.Second,
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
