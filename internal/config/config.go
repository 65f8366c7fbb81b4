package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	Incidencias  DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	config := &Config{}

	// KPI database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kpi_manager"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// External incidencias database. Optional: when the host or name is
	// missing the employee import degrades to an empty result.
	incPort, err := strconv.Atoi(getEnv("INCIDENCIAS_DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid INCIDENCIAS_DB_PORT: %w", err)
	}

	config.Incidencias = DatabaseConfig{
		Host:     getEnv("INCIDENCIAS_DB_HOST", ""),
		Port:     incPort,
		User:     getEnv("INCIDENCIAS_DB_USER", ""),
		Password: getEnv("INCIDENCIAS_DB_PASSWORD", ""),
		Name:     getEnv("INCIDENCIAS_DB_NAME", ""),
		SSLMode:  getEnv("INCIDENCIAS_DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google configuration. Optional: without a client id the
	// Google login routes reject with a configuration error.
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// IncidenciasConfigured reports whether the external incidencias
// database has enough configuration to connect.
func (c *Config) IncidenciasConfigured() bool {
	return c.Incidencias.Host != "" && c.Incidencias.Name != ""
}

// GoogleConfigured reports whether Google OAuth login is configured.
func (c *Config) GoogleConfigured() bool {
	return c.OAuth2Google.ClientID != "" && c.OAuth2Google.ClientSecret != ""
}

// DatabaseURL returns the PostgreSQL connection string for the KPI database.
func (c *Config) DatabaseURL() string {
	return dsn(c.Database)
}

// IncidenciasURL returns the connection string for the incidencias database.
func (c *Config) IncidenciasURL() string {
	return dsn(c.Incidencias)
}

func dsn(d DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
