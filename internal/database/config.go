package database

import (
	"fmt"

	"confeitaria/internal/config"
)

// Config holds database connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string

	// MigrationsPath is the directory holding golang-migrate SQL files.
	MigrationsPath string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(app *config.Config) *Config {
	return &Config{
		Host:           app.DBHost,
		Port:           app.DBPort,
		User:           app.DBUser,
		Password:       app.DBPassword,
		DBName:         app.DBName,
		SSLMode:        app.DBSSLMode,
		TimeZone:       app.Timezone,
		MigrationsPath: "migrations",
	}
}

// DSN returns the PostgreSQL keyword/value connection string.
func (c *Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	if c.TimeZone != "" {
		dsn += " TimeZone=" + c.TimeZone
	}
	return dsn
}

// URL returns the postgres:// URL used by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
