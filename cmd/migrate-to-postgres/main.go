// migrate-to-postgres copies the tower archive from SQLite to PostgreSQL.
// Towers already present in PostgreSQL (same fingerprint) are skipped, so
// the migration can be re-run.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/towers.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user towergen \
//	    -pg-password towergen \
//	    -pg-database towergen
package main

import (
	"flag"
	"log"

	"github.com/lawnchairsociety/towergen/internal/database"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/towers.db", "Path to SQLite archive")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "towergen", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "towergen", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("Tower Archive Migration: SQLite to PostgreSQL")
	log.Println("=============================================")

	log.Printf("Opening SQLite archive: %s", *sqlitePath)
	src, err := database.Open(database.DefaultConfig(*sqlitePath))
	if err != nil {
		log.Fatalf("Failed to open SQLite archive: %v", err)
	}
	defer src.Close()

	var dst *database.Database
	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	} else {
		pg := database.DefaultPostgresConfig()
		pg.Host = *pgHost
		pg.Port = *pgPort
		pg.User = *pgUser
		pg.Password = *pgPassword
		pg.Database = *pgDatabase
		pg.SSLMode = *pgSSLMode

		log.Printf("Opening PostgreSQL archive: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
		dst, err = database.Open(database.Config{Driver: string(database.DialectPostgres), Postgres: pg})
		if err != nil {
			log.Fatalf("Failed to open PostgreSQL archive: %v", err)
		}
		defer dst.Close()
	}

	migrated, skipped, err := migrateTowers(src, dst)
	if err != nil {
		log.Fatalf("Failed to migrate towers: %v", err)
	}

	log.Println("=============================================")
	log.Printf("Migration complete! Towers migrated: %d, already present: %d", migrated, skipped)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

// migrateTowers copies every tower of src into dst, oldest first so the
// PostgreSQL ids keep the archive order. A nil dst counts without writing.
func migrateTowers(src, dst *database.Database) (migrated, skipped int, err error) {
	towers, err := src.ListTowers(0)
	if err != nil {
		return 0, 0, err
	}

	for i := len(towers) - 1; i >= 0; i-- {
		if dst == nil {
			migrated++
			continue
		}
		rec, err := src.GetTower(towers[i].ID)
		if err != nil {
			return migrated, skipped, err
		}
		_, created, err := dst.RecordTower(*rec)
		if err != nil {
			return migrated, skipped, err
		}
		if created {
			migrated++
		} else {
			skipped++
		}
	}
	return migrated, skipped, nil
}
