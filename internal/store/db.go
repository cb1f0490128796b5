package store

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/pressly/goose/v3"
)

const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// DB wraps the sql pool together with the configured driver so stores can
// write queries once with ? placeholders and rebind them for Postgres.
type DB struct {
	*sql.DB
	Driver string
}

// ConnectDB opens the relational store selected by DB_DRIVER (pgx or mysql)
// against DB_URL.
func ConnectDB() (*DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	dsn := os.Getenv("DB_URL")
	var db *sql.DB
	var err error

	// Retry up to 10 times, waiting 3 seconds between attempts
	for i := 1; i <= 10; i++ {
		db, err = sql.Open(driver, dsn)
		if err != nil {
			fmt.Printf("Attempt %d: failed to open DB: %v\n", i, err)
		} else {
			err = db.Ping()
			if err == nil {
				fmt.Println("Connected to Database!")
				return &DB{DB: db, Driver: driver}, nil
			}
			fmt.Printf("Attempt %d: DB not ready: %v\n", i, err)
		}

		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("could not connect to database after multiple attempts: %w", err)
}

// Rebind converts ? placeholders to $1..$n when running on Postgres.
// Queries in the store packages never contain a literal question mark.
func (d *DB) Rebind(query string) string {
	if d.Driver == DriverMySQL {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func MigrateFS(db *DB, migrationsFS fs.FS, dir string) error {
	goose.SetBaseFS(migrationsFS)
	defer func() {
		goose.SetBaseFS(nil)
	}()
	return Migrate(db, dir)
}

func Migrate(db *DB, dir string) error {
	dialect := "postgres"
	if db.Driver == DriverMySQL {
		dialect = "mysql"
	}

	err := goose.SetDialect(dialect)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	err = goose.Up(db.DB, dir)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
