package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by OpenStore.
const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// AppConfig holds process-level settings: persistence, assets and mail.
type AppConfig struct {
	StoreBackend string        // sqlite, json, redis or memory
	DBPath       string        // sqlite database path
	JSONPath     string        // accounts JSON file path
	RedisURL     string        // redis://host:port/db
	AssetsDir    string        // directory of obstacle PNG sprites
	RunnerPath   string        // optional tuning file
	PasswordCost int           // bcrypt cost for new credentials
	SMTP         SMTPConfig    // recovery mail settings
	SendTimeout  time.Duration // upper bound for one recovery mail
}

// SMTPConfig holds outbound mail settings for recovery codes.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Sender   string
}

// Configured reports whether every required SMTP setting is present.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != "" && c.Sender != ""
}

// DefaultAppConfig returns settings rooted at ~/.runner.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		StoreBackend: StoreSQLite,
		DBPath:       "~/.runner/accounts.db",
		JSONPath:     "~/.runner/accounts_data.json",
		RedisURL:     "redis://localhost:6379/0",
		AssetsDir:    "~/.runner/assets/cactus",
		PasswordCost: 10,
		SendTimeout:  12 * time.Second,
	}
}

// LoadDotEnv loads KEY=value pairs from path into the environment.
// A missing file is not an error; existing variables are not overwritten.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: cannot load %s: %w", path, err)
	}
	return nil
}

// SMTPFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and SMTP_SENDER.
// The port defaults to 587 and the sender to the SMTP user.
func SMTPFromEnv() SMTPConfig {
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		}
	}
	user := os.Getenv("SMTP_USER")
	sender := os.Getenv("SMTP_SENDER")
	if sender == "" {
		sender = user
	}
	return SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		User:     user,
		Password: os.Getenv("SMTP_PASS"),
		Sender:   sender,
	}
}
