package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/nverdier/sherpa/internal/infra/sqlite"
)

func TestMigrate_RunsAllMigrations(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v; want nil", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("SELECT COUNT(*) FROM schema_migrations error = %v", err)
	}
	if count == 0 {
		t.Error("schema_migrations has 0 rows after MigrateUp; want > 0")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() first run error = %v; want nil", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() second run error = %v; want nil (idempotent)", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count after second run: %v", err)
	}
	if count != 1 {
		t.Errorf("schema_migrations rows = %d after double run; want 1", count)
	}
}

func TestMigrate_TablesCreated(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	assertTableExists(t, db, "users")
	assertTableExists(t, db, "exchanges")
}

func TestMigrate_UserEmailUnique(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO users (id, email, password_hash, display_name)
		VALUES ('u-1', 'alice@example.com', 'hash', 'Alice')
	`); err != nil {
		t.Fatalf("first user insert error = %v", err)
	}

	_, err := db.Exec(`
		INSERT INTO users (id, email, password_hash, display_name)
		VALUES ('u-2', 'alice@example.com', 'hash2', 'Alice 2')
	`)
	if err == nil {
		t.Error("duplicate email INSERT succeeded; want UNIQUE constraint error")
	}
}

func TestMigrate_ExchangeRequiresExistingUser(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	_, err := db.Exec(`
		INSERT INTO exchanges (id, user_id, prompt, kind)
		VALUES ('x-1', 'nonexistent-user', 'hello', 'general_response')
	`)
	if err == nil {
		t.Error("INSERT with non-existent user_id succeeded; want FK constraint error")
	}
}

func TestMigrate_ExchangeCascadesOnUserDelete(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO users (id, email, password_hash) VALUES ('u-1', 'a@b.c', 'h')
	`); err != nil {
		t.Fatalf("user insert: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO exchanges (id, user_id, prompt, kind)
		VALUES ('x-1', 'u-1', 'hello', 'general_response')
	`); err != nil {
		t.Fatalf("exchange insert: %v", err)
	}

	if _, err := db.Exec("DELETE FROM users WHERE id = 'u-1'"); err != nil {
		t.Fatalf("user delete: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM exchanges WHERE user_id = 'u-1'").Scan(&count); err != nil {
		t.Fatalf("exchange count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected exchanges to cascade on user delete, %d rows remain", count)
	}
}

func TestMigrate_Version(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	version, err := sqlite.MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v; want nil", err)
	}
	if version == 0 {
		t.Error("MigrationVersion() = 0; want > 0 after MigrateUp")
	}
}

func TestMigrationVersion_FreshDB(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)

	version, err := sqlite.MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v", err)
	}
	if version != 0 {
		t.Errorf("MigrationVersion() = %d; want 0 on fresh DB", version)
	}
}

func assertTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
		tableName,
	).Scan(&name)

	if err == sql.ErrNoRows {
		t.Errorf("table %q not found in sqlite_master after MigrateUp", tableName)
		return
	}
	if err != nil {
		t.Fatalf("assertTableExists(%q) query error = %v", tableName, err)
	}
}
