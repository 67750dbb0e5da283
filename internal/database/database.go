package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations
var migrations embed.FS

// Dialect identifies the SQL flavour spoken by the connected database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectTurso    Dialect = "turso"
	DialectPostgres Dialect = "postgres"
)

// DB is a database handle that knows which dialect it talks to.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Rebind rewrites '?' placeholders into the form expected by the dialect.
// Queries in this repository are written with '?' and never contain the
// character inside string literals.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
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

// InitDB opens the database and brings the schema up to date.
//
// With an empty primaryURL a local SQLite file at dbPath is used (":memory:"
// gives a private in-memory database). A postgres:// URL connects through
// lib/pq; any other URL is treated as a Turso primary.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryURL string, authToken string) (*DB, func(), error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	switch {
	case primaryURL == "":
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		dialect = DialectSQLite
		db, err = sql.Open("sqlite3", "file:"+dbPath+"?_foreign_keys=on")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// Every new connection would otherwise see its own empty database.
			db.SetMaxOpenConns(1)
		}
	case strings.HasPrefix(primaryURL, "postgres://"), strings.HasPrefix(primaryURL, "postgresql://"):
		log.Info("Initializing postgres database")
		dialect = DialectPostgres
		db, err = sql.Open("postgres", primaryURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
	default:
		log.Info("Initializing Turso database", "url", primaryURL)
		dialect = DialectTurso
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = migrate(db, dialect); err != nil {
		db.Close() // Close on error
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return &DB{DB: db, Dialect: dialect}, teardown, nil
}

func migrate(db *sql.DB, dialect Dialect) error {
	dir := "migrations/sqlite"
	if dialect == DialectPostgres {
		dir = "migrations/postgres"
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return err
	}
	log.Info("Database initialized successfully", "dialect", dialect)
	return nil
}
