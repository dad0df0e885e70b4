package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Environment holds every setting read from the process environment.
// Keys are the lower-cased environment variable names.
type Environment struct {
	Port    string `koanf:"port"`
	AppEnv  string `koanf:"app_env"`
	BaseURL string `koanf:"base_url"`

	DatabaseURL string `koanf:"db_url"`

	JWTSecretKey  string        `koanf:"jwt_secret_key"`
	SessionMaxAge time.Duration `koanf:"session_max_age"`
	CookieDomain  string        `koanf:"cookie_domain"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	CORSOrigins string `koanf:"cors_origins"`

	GeminiAPIKey  string `koanf:"gemini_api_key"`
	GeminiModel   string `koanf:"gemini_model"`
	GeminiBaseURL string `koanf:"gemini_base_url"`

	GoogleClientID     string `koanf:"google_client_id"`
	GoogleClientSecret string `koanf:"google_client_secret"`

	Auth0Domain   string `koanf:"auth0_domain"`
	Auth0Audience string `koanf:"auth0_audience"`

	// Derived after loading
	IsDevelopment bool   `koanf:"-"`
	Domain        string `koanf:"-"`
	CookieSecure  bool   `koanf:"-"`
}

func defaultEnvironment() Environment {
	return Environment{
		Port:          "8080",
		AppEnv:        "development",
		BaseURL:       "http://localhost:8080",
		DatabaseURL:   "file:learning-tracker.db?_foreign_keys=on",
		SessionMaxAge: 30 * 24 * time.Hour,
		LogLevel:      "info",
		LogFormat:     "console",
		CORSOrigins:   "http://localhost:3000",
		GeminiModel:   "models/gemini-2.5-flash",
		GeminiBaseURL: "https://generativelanguage.googleapis.com",
	}
}

// Load layers the defaults under the process environment.
func Load() (*Environment, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultEnvironment(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Environment{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (e *Environment) finalize() error {
	if e.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY not set")
	}

	// No cookie domain means we're running locally
	e.IsDevelopment = e.CookieDomain == "" || e.AppEnv == "development"
	e.Domain = e.CookieDomain
	if e.Domain == "" {
		e.Domain = "localhost"
	}
	e.CookieSecure = !e.IsDevelopment
	return nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (e *Environment) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(e.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (e *Environment) GoogleEnabled() bool {
	return e.GoogleClientID != "" && e.GoogleClientSecret != ""
}

func (e *Environment) Auth0Enabled() bool {
	return e.Auth0Domain != "" && e.Auth0Audience != ""
}
