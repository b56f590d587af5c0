package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const (
	defaultMaxConns     = 25
	defaultConnLifetime = 30 * time.Minute
	pingTimeout         = 5 * time.Second
)

// Config carries the MySQL connection settings.  Pool knobs left at zero
// fall back to the package defaults.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string

	MaxConns     int
	ConnLifetime time.Duration
}

// DSN renders the go-sql-driver connection string.  parseTime has the
// driver scan DATETIME columns into time.Time, and loc pins them to UTC so
// period arithmetic never crosses time zones.
func (c Config) DSN() string {
	auth := c.User
	if c.Password != "" {
		auth = c.User + ":" + c.Password
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, c.Host, c.Port, c.Name)
}

// Open connects to MySQL, applies the pool settings and verifies the
// connection with a bounded ping.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	lifetime := cfg.ConnLifetime
	if lifetime <= 0 {
		lifetime = defaultConnLifetime
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(lifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
