package storage

import (
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/schema"
)

// SQL construction shared by the SQLite and Postgres backends. The
// two differ only in placeholder style, the insertion-order column,
// and DDL column types.

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

func (d dialect) placeholder(n int) string {
	if d == dialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// orderColumn is the implicit insertion-order tie breaker.
func (d dialect) orderColumn() string {
	if d == dialectPostgres {
		return "seq"
	}
	return "rowid"
}

func (d dialect) columnType(t schema.ColumnType) string {
	switch t {
	case schema.Integer, schema.Time:
		return "INTEGER"
	case schema.Float:
		if d == dialectPostgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	}
	return "TEXT"
}

// Key columns worth a secondary index, for the tables queried at
// scale.
var indexedColumns = map[string][]string{
	"stops":      {"parent_station"},
	"trips":      {"route_id", "service_id"},
	"stop_times": {"trip_id", "stop_id"},
	"shapes":     {"shape_id"},
}

func createTableStatements(d dialect, t schema.Table) []string {
	cols := []string{"agency_key TEXT NOT NULL"}
	if d == dialectPostgres {
		cols = append(cols, "seq BIGSERIAL")
	}
	for _, c := range t.Columns {
		cols = append(cols, fmt.Sprintf("%s %s", c.Name, d.columnType(c.Type)))
	}

	statements := []string{fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		t.Name, strings.Join(cols, ",\n    "),
	)}

	statements = append(statements, fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s_agency_key ON %s (agency_key)",
		t.Name, t.Name,
	))
	for _, col := range t.PrimaryKey() {
		statements = append(statements, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s_%s ON %s (%s)",
			t.Name, col, t.Name, col,
		))
	}
	for _, col := range indexedColumns[t.Name] {
		statements = append(statements, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s_%s ON %s (%s)",
			t.Name, col, t.Name, col,
		))
	}

	return statements
}

func createAllTables(db *sql.DB, d dialect) error {
	for _, name := range schema.AllTables() {
		t, _ := schema.Describe(name)
		for _, stmt := range createTableStatements(d, t) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("creating %s table: %w", name, err)
			}
		}
	}
	return nil
}

// whereArg converts a where-clause literal to a driver argument.
func whereArg(v any) any {
	if val, ok := v.(model.Value); ok {
		return val.Arg()
	}
	return v
}

func buildSelect(d dialect, t schema.Table, spec Spec) (string, []any, []string, error) {
	fields := spec.Fields
	if len(fields) == 0 {
		fields = make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			fields = append(fields, c.Name)
		}
	} else {
		for _, f := range fields {
			if _, ok := t.Column(f); !ok {
				return "", nil, nil, &model.UnknownFieldError{Table: t.Name, Field: f}
			}
		}
	}

	conditions := []string{}
	args := []any{}
	n := 0
	next := func() string {
		n++
		return d.placeholder(n)
	}

	if spec.AgencyKey != "" {
		conditions = append(conditions, "agency_key = "+next())
		args = append(args, spec.AgencyKey)
	}

	// Map iteration order is random; sort for a deterministic
	// query.
	whereFields := make([]string, 0, len(spec.Where))
	for f := range spec.Where {
		whereFields = append(whereFields, f)
	}
	sort.Strings(whereFields)

	for _, f := range whereFields {
		if _, ok := t.Column(f); !ok {
			return "", nil, nil, &model.UnknownFieldError{Table: t.Name, Field: f}
		}

		v := spec.Where[f]
		if v == nil {
			conditions = append(conditions, f+" IS NULL")
			continue
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			if rv.Len() == 0 {
				conditions = append(conditions, "1 = 0")
				continue
			}
			placeholders := make([]string, 0, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				placeholders = append(placeholders, next())
				args = append(args, whereArg(rv.Index(i).Interface()))
			}
			conditions = append(conditions, f+" IN ("+strings.Join(placeholders, ", ")+")")
			continue
		}

		conditions = append(conditions, f+" = "+next())
		args = append(args, whereArg(v))
	}

	orderings := []string{}
	for _, key := range spec.OrderBy {
		if _, ok := t.Column(key.Field); !ok {
			return "", nil, nil, &model.UnknownFieldError{Table: t.Name, Field: key.Field}
		}
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		orderings = append(orderings, key.Field+" "+dir)
	}
	orderings = append(orderings, d.orderColumn())

	query := "SELECT " + strings.Join(fields, ", ") + " FROM " + t.Name
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + strings.Join(orderings, ", ")

	return query, args, fields, nil
}

func queryTable(db *sql.DB, d dialect, table string, spec Spec) ([]model.Row, error) {
	t, ok := schema.Describe(table)
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	query, args, fields, err := buildSelect(d, t, spec)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	result := []model.Row{}
	for rows.Next() {
		row, err := scanRow(rows, t, fields)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s rows: %w", table, err)
	}

	return result, nil
}

func scanRow(rows *sql.Rows, t schema.Table, fields []string) (model.Row, error) {
	dest := make([]any, len(fields))
	for i, f := range fields {
		c, _ := t.Column(f)
		switch c.Type {
		case schema.Integer, schema.Time:
			dest[i] = &sql.NullInt64{}
		case schema.Float:
			dest[i] = &sql.NullFloat64{}
		default:
			dest[i] = &sql.NullString{}
		}
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	row := model.Row{}
	for i, f := range fields {
		switch v := dest[i].(type) {
		case *sql.NullInt64:
			if v.Valid {
				row[f] = model.Int64(v.Int64)
			} else {
				row[f] = model.Null
			}
		case *sql.NullFloat64:
			if v.Valid {
				row[f] = model.Float64(v.Float64)
			} else {
				row[f] = model.Null
			}
		case *sql.NullString:
			if v.Valid {
				row[f] = model.String(v.String)
			} else {
				row[f] = model.Null
			}
		}
	}

	return row, nil
}

func rowCounts(db *sql.DB, d dialect, agencyKey string) (map[string]int, error) {
	counts := map[string]int{}
	for _, name := range schema.AllTables() {
		query := "SELECT COUNT(*) FROM " + name + " WHERE agency_key = " + d.placeholder(1)
		var n int
		if err := db.QueryRow(query, agencyKey).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s rows: %w", name, err)
		}
		if n > 0 {
			counts[name] = n
		}
	}
	return counts, nil
}

// sqlTx implements Tx for both backends.
type sqlTx struct {
	tx   *sql.Tx
	d    dialect
	done bool
}

func (t *sqlTx) DeleteAgency(agencyKey string) error {
	for _, name := range schema.AllTables() {
		query := "DELETE FROM " + name + " WHERE agency_key = " + t.d.placeholder(1)
		if _, err := t.tx.Exec(query, agencyKey); err != nil {
			return fmt.Errorf("deleting %s rows: %w", name, err)
		}
	}
	return nil
}

func (t *sqlTx) BulkInsert(table string, agencyKey string, rows []model.Row) error {
	tab, ok := schema.Describe(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	if len(rows) == 0 {
		return nil
	}

	cols := []string{"agency_key"}
	placeholders := []string{t.d.placeholder(1)}
	for i, c := range tab.Columns {
		cols = append(cols, c.Name)
		placeholders = append(placeholders, t.d.placeholder(i+2))
	}

	// One prepared statement per table keeps large tables
	// (stop_times in particular) fast.
	stmt, err := t.tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	))
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(tab.Columns)+1)
	for _, row := range rows {
		args[0] = agencyKey
		for i, c := range tab.Columns {
			args[i+1] = row[c.Name].Arg()
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting %s row: %w", table, err)
		}
	}

	return nil
}

func (t *sqlTx) Commit() error {
	t.done = true
	return t.tx.Commit()
}

func (t *sqlTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}
