package repo

import (
	"fmt"
	"strings"

	"todoapi/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath используется, если строка подключения не задана.
const DefaultSQLitePath = "todo.db"

// InitDB открывает БД по DSN и накатывает схему.
// postgres:// (или key=value с host=) — PostgreSQL, всё остальное — SQLite (modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	dial, isSQLite := dialectorFor(dsn)

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if isSQLite {
		// у SQLite один писатель; одно соединение снимает SQLITE_BUSY/LOCKED
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы users, todos, files вместе с FK-каскадами.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Todo{}, &model.File{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) (gorm.Dialector, bool) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return postgres.Open(dsn), false
	}
	if dsn == "" {
		dsn = DefaultSQLitePath
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: withForeignKeys(dsn)}, true
}

// withForeignKeys включает PRAGMA foreign_keys на каждом соединении, без него каскады не работают.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
