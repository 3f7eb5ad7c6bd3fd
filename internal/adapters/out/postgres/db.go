// Package postgres opens and migrates the PostgreSQL store behind the
// orderrepo GORM repository.
//
// Connections go through the lib/pq database/sql driver and are handed to
// GORM as an existing pool:
//
//	db, err := postgres.Open(postgres.Config{Host: "localhost", Port: "5432", ...}.DSN())
//	if err != nil {
//	    return err
//	}
//	if err = postgres.Migrate(ctx, db); err != nil {
//	    return err
//	}
//	repo := orderrepo.NewGormOrderRepository(db)
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orchestrator/internal/adapters/out/postgres/orderrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds the connection settings read from the environment.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the key/value connection string understood by lib/pq.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects to dsn and verifies the connection with a ping.
func Open(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the production_orders table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&orderrepo.ProductionOrderDTO{}); err != nil {
		return fmt.Errorf("migrate production_orders: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
