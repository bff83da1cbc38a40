package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// EnsureDatabase creates the database named in databaseURL if it does not
// exist, connecting to the server's maintenance database to do so. It is a
// one-shot setup operation, idempotent, and not part of normal pipeline
// operation.
func EnsureDatabase(ctx context.Context, databaseURL string) error {
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("invalid database URL: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		return fmt.Errorf("database URL does not name a database")
	}

	// Connect without the target database; it may not exist yet.
	cfg.Database = "postgres"
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot take bind parameters.
	stmt := fmt.Sprintf(`CREATE DATABASE %s ENCODING 'UTF8'`, pgx.Identifier{dbName}.Sanitize())
	if _, err := conn.Exec(ctx, stmt); err != nil {
		if IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}

	return nil
}
