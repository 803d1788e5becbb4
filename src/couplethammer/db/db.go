package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed scripts/*.sql
var bootstrapScripts embed.FS

// Open opens the sqlite database at path and bootstraps its schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	DB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", path, err)
	}
	if err := BootstrapDB(ctx, DB); err != nil {
		DB.Close()
		return nil, err
	}
	return DB, nil
}

// BootstrapDB executes every embedded .sql script against the provided database, in
// alphabetical order by filename. If no scripts are found, an error is returned.
func BootstrapDB(ctx context.Context, DB *sql.DB) error {
	foundSQLFile := false
	scripts, err := bootstrapScripts.ReadDir("scripts")
	if err != nil {
		return err
	}
	for _, finfo := range scripts {
		if finfo.IsDir() {
			continue
		}
		foundSQLFile = true

		script, err := bootstrapScripts.ReadFile("scripts/" + finfo.Name())
		if err != nil {
			return err
		}
		_, err = DB.ExecContext(ctx, string(script))
		if err != nil {
			log.Printf("could not execute bootstrap script %s: %v", finfo.Name(), err)
			return err
		}
		log.Printf("executed bootstrap script %s", finfo.Name())
	}
	if !foundSQLFile {
		return fmt.Errorf("could not find any *.sql files in schema folder scripts")
	}
	return nil
}
