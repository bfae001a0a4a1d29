package postgres

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

type Db struct {
	PostgresClient *sql.DB
}

// ConnectDB establishes a connection to the PostgreSQL database, retrying
// a bounded number of times before giving up.
func ConnectDB(log zerolog.Logger) (*Db, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
	)

	maxRetries, _ := strconv.Atoi(os.Getenv("MAX_DB_ATTEMPTS"))
	if maxRetries == 0 {
		maxRetries = 10
	}

	var db *sql.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", connStr)
		if err != nil {
			log.Warn().Err(err).Int("attempt", i+1).Msg("failed to open database connection")
			time.Sleep(2 * time.Second)
			continue
		}

		if err = db.Ping(); err == nil {
			log.Info().Msg("connected to PostgreSQL")
			return &Db{PostgresClient: db}, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Msg("failed to ping PostgreSQL")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("exceeded max retries connecting to PostgreSQL: %w", err)
}

// Stop closes the PostgreSQL connection.
func (db *Db) Stop() error {
	if db.PostgresClient == nil {
		return nil
	}
	return db.PostgresClient.Close()
}

// InitSchema creates the tables from the bundled schema file.
func (db *Db) InitSchema() error {
	schemaPath := filepath.Join("db", "postgres", "schema.sql")
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := db.PostgresClient.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
