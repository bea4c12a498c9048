package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"path"
	"sort"
	"strings"
)

//go:embed scripts/*.sql
var bootstrapScripts embed.FS

// BootstrapDB executes every embedded scripts/*.sql file against the provided database, in
// alphabetical order by filename. All scripts are idempotent, so this is safe to run on every
// startup.
func BootstrapDB(DB *sql.DB) error {
	entries, err := bootstrapScripts.ReadDir("scripts")
	if err != nil {
		return err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return fmt.Errorf("could not find any *.sql files in schema folder scripts")
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := bootstrapScripts.ReadFile(path.Join("scripts", name))
		if err != nil {
			return err
		}
		if _, err := DB.Exec(string(script)); err != nil {
			log.Printf("could not execute bootstrap script %s: %v", name, err)
			return fmt.Errorf("bootstrap script %s: %w", name, err)
		}
		log.Printf("executed bootstrap script %s", name)
	}
	return nil
}
