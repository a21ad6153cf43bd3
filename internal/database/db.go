package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/s9096309/movie-shelf/internal/config"
)

// Open connects to the configured store, verifies the connection and
// makes sure the users and movies tables exist.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case "sqlite3", "":
		return OpenSQLite(cfg.Path)
	case "mysql":
		return OpenMySQL(cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// OpenSQLite opens (creating if needed) the sqlite file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	// _foreign_keys=on makes movies.user_id a real constraint
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// one writer at a time; sqlite serialises anyway
	db.SetMaxOpenConns(1)
	return finish(db, sqliteSchema)
}

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)
	return finish(db, mysqlSchema)
}

func finish(db *sql.DB, schema []string) (*sql.DB, error) {
	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Migrate(ctx, db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate executes the CREATE TABLE IF NOT EXISTS statements in order.
func Migrate(ctx context.Context, db *sql.DB, schema []string) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(80) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		title      VARCHAR(120) NOT NULL,
		director   VARCHAR(120),
		year       INTEGER,
		rating     REAL,
		poster_url VARCHAR(255),
		imdb_id    VARCHAR(20)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_user_id ON movies(user_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(80) NOT NULL,
		UNIQUE KEY uq_users_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS movies (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		title      VARCHAR(120) NOT NULL,
		director   VARCHAR(120),
		year       INT,
		rating     DOUBLE,
		poster_url VARCHAR(255),
		imdb_id    VARCHAR(20),
		KEY idx_movies_user_id (user_id),
		CONSTRAINT fk_movies_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
