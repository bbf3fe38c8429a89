package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"campuswordle/internal/config"
	"campuswordle/internal/database"
	"campuswordle/internal/service"
)

// backup exports the full database to a JSON snapshot or restores one,
// typically around engine switches (sqlite to postgres) or before risky
// admin operations.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backups := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("output", "", "snapshot file to write (default: backup_YYYYMMDD_HHMMSS.json)")
		fs.Parse(os.Args[2:])
		runExport(backups, *out)

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		in := fs.String("input", "", "snapshot file to read (required)")
		fs.Parse(os.Args[2:])
		if *in == "" {
			fmt.Fprintln(os.Stderr, "import: the -input flag is required")
			fs.PrintDefaults()
			os.Exit(1)
		}
		runImport(backups, *in)

	default:
		usage()
		os.Exit(1)
	}
}

func runExport(backups *service.BackupService, path string) {
	if path == "" {
		path = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	log.Printf("Exporting database to %s", path)
	if err := backups.Export(path); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	if info, err := os.Stat(path); err == nil {
		log.Printf("Export complete, wrote %.2f MB", float64(info.Size())/1024/1024)
	}
}

func runImport(backups *service.BackupService, path string) {
	if _, err := os.Stat(path); err != nil {
		log.Fatalf("Cannot read snapshot %s: %v", path, err)
	}

	log.Printf("Importing database from %s", path)
	if err := backups.Import(path); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import complete")
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: backup <export|import> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "  export   write the database to a JSON snapshot")
	fmt.Fprintln(os.Stderr, "  import   load a JSON snapshot into the database")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Run 'backup <command> -h' for command flags.")
}
