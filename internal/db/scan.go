package db

import (
	"database/sql"
	"fmt"
)

// scanRows reads every row into memory and closes rows.
func scanRows(rows *sql.Rows) ([]Column, []Row, error) {
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("getting columns: %w", err)
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, fmt.Errorf("getting column types: %w", err)
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, DatabaseType: columnTypes[i].DatabaseTypeName()}
	}

	data := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(names))
		valuePtrs := make([]any, len(names))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(Row, len(values))
		for i, val := range values {
			row[i] = normalizeValue(val)
		}
		data = append(data, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating rows: %w", err)
	}
	return columns, data, nil
}

// normalizeValue copies driver-owned byte slices into strings.
func normalizeValue(val any) any {
	switch v := val.(type) {
	case []byte:
		return string(v)
	default:
		return v
	}
}
