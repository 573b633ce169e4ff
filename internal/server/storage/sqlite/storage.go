package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Storage реализует UserStorage поверх SQLite
type Storage struct {
	db *sql.DB
}

// Нагрузка этого сервиса почти целиком чтение одной небольшой таблицы,
// пишут только signup и delete. WAL позволяет читать параллельно с
// редкой записью, busy_timeout прикрывает момент конкурентной записи.
// foreign_keys не включаем, ссылок в схеме нет
var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA busy_timeout = 5000;",
}

// New открывает базу по указанному пути и накатывает миграции
// Для тестов подходит ":memory:"
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Один писатель, пул из одного соединения исключает
	// SQLITE_BUSY между собственными запросами
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close закрывает соединение с базой
func (s *Storage) Close() error {
	return s.db.Close()
}

// migrate накатывает недостающие миграции из embedded FS
func migrate(ctx context.Context, db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	goose.SetBaseFS(migrationsFS)

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
