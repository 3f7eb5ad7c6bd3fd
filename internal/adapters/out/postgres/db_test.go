package postgres_test

import (
	"testing"

	"orchestrator/internal/adapters/out/postgres"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := postgres.Config{Host: "db", Port: "5432", User: "app", Password: "secret", Name: "orders"}

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=orders sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}
