package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/repo"
)

// Creates the preset_store table for the SQL-backed preset stores.
//
// Spanner (typically the emulator for local dev) applies migrations/001_initial_schema.sql:
//
//	set SPANNER_EMULATOR_HOST=localhost:9010
//	set SALE_SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
//
// Postgres is migrated when SALE_POSTGRES_URL is set.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	spannerDB := firstEnv("SALE_SPANNER_DATABASE", "SPANNER_DATABASE")
	postgresURL := os.Getenv("SALE_POSTGRES_URL")
	if spannerDB == "" && postgresURL == "" {
		log.Fatal("set SALE_SPANNER_DATABASE and/or SALE_POSTGRES_URL")
	}

	if spannerDB != "" {
		n, err := migrateSpanner(ctx, spannerDB)
		if err != nil {
			log.Fatalf("spanner: %v", err)
		}
		fmt.Printf("Applied %d DDL statements to %s\n", n, spannerDB)
	}

	if postgresURL != "" {
		db, err := repo.OpenPostgres(ctx, postgresURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		if err := repo.NewPostgresStore(db, "").EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		fmt.Println("Postgres preset_store table is ready")
	}
}

func migrateSpanner(ctx context.Context, db string) (int, error) {
	ddlPath := filepath.Join("migrations", "001_initial_schema.sql")
	stmts, err := readDDLStatements(ddlPath)
	if err != nil {
		return 0, fmt.Errorf("read DDL: %w", err)
	}
	if len(stmts) == 0 {
		return 0, fmt.Errorf("no DDL statements found in %s", ddlPath)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return len(stmts), nil
}

// readDDLStatements splits a DDL file on ';' and drops "--" comment lines.
func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Normalize line endings for Windows-authored files.
	sql := strings.ReplaceAll(string(b), "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
