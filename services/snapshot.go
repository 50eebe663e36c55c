package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// snapshotTimeLayout matches the primary timestamp layout the SQLite driver
// parses back, so exported date values survive a round trip.
const snapshotTimeLayout = "2006-01-02 15:04:05.999999999-07:00"

// ExportSnapshot serializes the entire store to a SQL text dump: for each
// table its CREATE statement followed by one INSERT per row. Comment lines
// start with "--" and are ignored on import.
func ExportSnapshot(db *gorm.DB) (string, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return "", fmt.Errorf("failed to get database instance: %w", err)
	}

	var dump strings.Builder
	dump.WriteString("-- Database Snapshot Export\n")
	dump.WriteString(fmt.Sprintf("-- Generated on: %s\n", time.Now().Format("2006-01-02")))
	dump.WriteString("-- Court Establishment Registry\n\n")

	tables, err := snapshotTables(sqlDB)
	if err != nil {
		return "", err
	}

	for _, table := range tables {
		dump.WriteString(table.createSQL)
		dump.WriteString(";\n\n")

		if err := writeTableRows(&dump, sqlDB, table.name); err != nil {
			return "", err
		}
	}

	return dump.String(), nil
}

// ImportSnapshot restores the store from a SQL text dump produced by
// ExportSnapshot. The restore is atomic: every existing table is dropped and
// the dump's statements executed inside a single transaction, which rolls
// back on the first failing statement. Referential integrity enforcement is
// suspended for the duration of the restore.
func ImportSnapshot(db *gorm.DB, dump string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx := context.Background()
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	// Foreign keys are a per-connection setting and cannot change inside a
	// transaction.
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	defer conn.ExecContext(ctx, "PRAGMA foreign_keys = ON")

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore transaction: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to list tables: %w", err)
	}
	var existing []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			tx.Rollback()
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		existing = append(existing, name)
	}
	rows.Close()

	for _, name := range existing {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdentifier(name)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}

	for _, statement := range splitSQLStatements(dump) {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute statement %q: %w", truncate(statement, 100), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}

type snapshotTable struct {
	name      string
	createSQL string
}

func snapshotTables(sqlDB *sql.DB) ([]snapshotTable, error) {
	rows, err := sqlDB.Query(
		"SELECT name, sql FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tables: %w", err)
	}
	defer rows.Close()

	var tables []snapshotTable
	for rows.Next() {
		var t snapshotTable
		if err := rows.Scan(&t.name, &t.createSQL); err != nil {
			return nil, fmt.Errorf("failed to scan table metadata: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func writeTableRows(dump *strings.Builder, sqlDB *sql.DB, table string) error {
	rows, err := sqlDB.Query("SELECT * FROM " + quoteIdentifier(table))
	if err != nil {
		return fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	values := make([]interface{}, len(columns))
	scanTargets := make([]interface{}, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	wrote := false
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("failed to scan row of %s: %w", table, err)
		}

		formatted := make([]string, len(values))
		for i, v := range values {
			formatted[i] = formatSQLValue(v)
		}

		fmt.Fprintf(dump, "INSERT INTO %s (%s) VALUES (%s);\n",
			table, strings.Join(columns, ", "), strings.Join(formatted, ", "))
		wrote = true
	}
	if wrote {
		dump.WriteString("\n")
	}
	return rows.Err()
}

// formatSQLValue renders one column value as a SQL literal. Strings are
// single-quote-escaped and dates quoted as ISO strings.
func formatSQLValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quoteSQLString(value)
	case []byte:
		return quoteSQLString(string(value))
	case time.Time:
		return "'" + value.Format(snapshotTimeLayout) + "'"
	case bool:
		if value {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// quoteSQLString renders a string literal that stays on one physical line.
// Statement splitting is line-based, so an embedded line break inside a
// literal would corrupt the dump; breaks are emitted as char(10)/char(13)
// concatenations that SQLite evaluates back to the original text on import.
func quoteSQLString(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	escaped = strings.ReplaceAll(escaped, "\r", "'||char(13)||'")
	escaped = strings.ReplaceAll(escaped, "\n", "'||char(10)||'")
	return "'" + escaped + "'"
}

// splitSQLStatements breaks a dump into executable statements. Comment lines
// and blanks are skipped; a statement ends with a line terminated by ";".
func splitSQLStatements(dump string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(line)

		if strings.HasSuffix(line, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	return statements
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
