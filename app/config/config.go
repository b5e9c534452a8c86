package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
)

type Config struct {
	DB     *sql.DB
	Engine *ledger.Engine
}

var AppConfig = &Config{}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the Postgres connection from DATABASE_URL, or from the
// discrete PG* variables with local development defaults.
func InitDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			env("PGHOST", "localhost"),
			env("PGPORT", "5432"),
			env("PGUSER", "postgres"),
			env("PGPASSWORD", ""),
			env("PGDATABASE", "byose"),
			env("PGSSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection: %v", err)
	}

	AppConfig.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// SetEngine wires the ledger engine built in main (or in tests, over the
// in-memory store) for the route packages to use.
func SetEngine(e *ledger.Engine) {
	AppConfig.Engine = e
}

func GetEngine() *ledger.Engine {
	return AppConfig.Engine
}
