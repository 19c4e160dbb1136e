package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrSchemaMismatch is returned when a file lacks an expected table or column.
var ErrSchemaMismatch = errors.New("schema mismatch")

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Field string
	Type  string
}

// Schema lists the columns each table must have.
type Schema map[string][]string

// GetTableColumns retrieves the column definitions for a given table.
// A table that does not exist yields no columns and no error.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type sqliteColumn struct {
		Cid       int
		Name      string
		Type      string
		Notnull   int
		DfltValue *string
		Pk        int
	}

	var sqliteCols []sqliteColumn
	query := fmt.Sprintf("PRAGMA table_info('%s')", strings.ReplaceAll(tableName, "'", "''"))
	if err := db.Raw(query).Scan(&sqliteCols).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(sqliteCols))
	for _, col := range sqliteCols {
		columns = append(columns, ColumnInfo{
			Field: strings.ToLower(col.Name),
			Type:  strings.ToLower(col.Type),
		})
	}
	return columns, nil
}

// VerifySchema checks that every table in schema exists with the listed columns.
// Column names are compared case-insensitively.
func VerifySchema(db *gorm.DB, schema Schema) error {
	for table, want := range schema {
		columns, err := GetTableColumns(db, table)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return fmt.Errorf("%w: table %s not found", ErrSchemaMismatch, table)
		}

		have := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			have[c.Field] = struct{}{}
		}
		for _, col := range want {
			if _, ok := have[strings.ToLower(col)]; !ok {
				return fmt.Errorf("%w: column %s.%s not found", ErrSchemaMismatch, table, col)
			}
		}
	}
	return nil
}
