package database

import (
	"context"
	"fmt"
	"strings"

	"data-reconciler/core/reconcile"
	"data-reconciler/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// progressEvery is how many rows are loaded between progress logs.
const progressEvery = 10000

// LoadDataset runs query and indexes every row by the value of primaryKeyColumn.
//
// Column names are normalized: any "table." qualifier is dropped and the name is
// upper-cased. SQL NULL is stored as reconcile.NullValue.
func LoadDataset(ctx context.Context, db *gorm.DB, query, primaryKeyColumn string, log *zap.Logger) (reconcile.Dataset, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(query) == "" {
		return nil, reconcile.ConfigurationError("load dataset", fmt.Errorf("query is empty"))
	}

	keyColumn := NormalizeColumn(primaryKeyColumn)
	if keyColumn == "" {
		return nil, reconcile.ConfigurationError("load dataset", fmt.Errorf("primary key column is not set"))
	}

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, reconcile.ConnectivityError("load dataset", fmt.Errorf("failed to execute query: %w", err))
	}
	defer rows.Close()

	rawColumns, err := rows.Columns()
	if err != nil {
		return nil, reconcile.ConnectivityError("load dataset", fmt.Errorf("failed to read columns: %w", err))
	}

	columns := make([]string, len(rawColumns))
	keyIdx := -1
	seen := make(map[string]string, len(rawColumns))
	for i, raw := range rawColumns {
		col := NormalizeColumn(raw)
		if prev, dup := seen[col]; dup {
			return nil, reconcile.ConfigurationError("load dataset",
				fmt.Errorf("columns %q and %q both normalize to %q", prev, raw, col))
		}
		seen[col] = raw
		columns[i] = col
		if col == keyColumn {
			keyIdx = i
		}
	}
	if keyIdx < 0 {
		return nil, reconcile.ConfigurationError("load dataset",
			fmt.Errorf("primary key column %q is not in the result set %v", keyColumn, columns))
	}

	dataset := make(reconcile.Dataset)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, reconcile.ConnectivityError("load dataset", fmt.Errorf("failed to scan row %d: %w", len(dataset)+1, err))
		}

		record := make(reconcile.Record, len(columns))
		for i, col := range columns {
			record[col] = render(values[i])
		}

		key := record[keyColumn]
		if values[keyIdx] == nil {
			return nil, reconcile.DataIntegrityError("load dataset", fmt.Errorf("row %d has a NULL primary key", len(dataset)+1))
		}
		if _, dup := dataset[key]; dup {
			return nil, reconcile.DataIntegrityError("load dataset", fmt.Errorf("primary key %q appears more than once", key))
		}
		dataset[key] = record

		if len(dataset)%progressEvery == 0 {
			log.Info("Loading dataset", zap.Int("rows", len(dataset)))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, reconcile.ConnectivityError("load dataset", fmt.Errorf("failed to iterate rows: %w", err))
	}

	log.Info("Dataset loaded", zap.Int("rows", len(dataset)), zap.Int("columns", len(columns)))
	return dataset, nil
}

// NormalizeColumn drops a "table." qualifier and upper-cases the name.
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToUpper(name)
}

func render(v any) string {
	if v == nil {
		return reconcile.NullValue
	}
	return utils.ToString(v)
}
