package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// SQLPool wraps a raw database/sql connection pool. The date-range report
// queries use it directly instead of going through GORM.
type SQLPool struct {
	conn *sql.DB
}

// PoolConfig holds database configuration for the raw pool
type PoolConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewSQLPool creates a new raw database connection pool
func NewSQLPool(cfg PoolConfig) (*SQLPool, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Read-only analytics workload; a small pool is plenty
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)
	conn.SetConnMaxIdleTime(2 * time.Minute)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")

	return &SQLPool{conn: conn}, nil
}

// Close closes the database connection
func (p *SQLPool) Close() error {
	if p.conn != nil {
		log.Println("📡 Closing database connection...")
		return p.conn.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (p *SQLPool) Ping() error {
	return p.conn.Ping()
}

// Conn returns the underlying sql.DB connection
func (p *SQLPool) Conn() *sql.DB {
	return p.conn
}
