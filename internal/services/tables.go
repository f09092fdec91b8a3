package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
)

// FieldSpec describes one editable form field of an entity.
type FieldSpec struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Optional bool   `json:"optional,omitempty"`
	Ref      string `json:"ref,omitempty"`
}

const (
	KindText    = "text"
	KindInt     = "int"
	KindRef     = "ref"
	KindDecimal = "decimal"
	KindDate    = "date"
	KindTime    = "time"
)

// Resource is the List/Create/Edit/Delete family of one entity.
type Resource interface {
	Name() string
	Singular() string
	Label() string
	Fields() []FieldSpec
	List(ctx context.Context, q sqlx.QueryerContext) (interface{}, error)
	Get(ctx context.Context, q sqlx.QueryerContext, id int64) (interface{}, error)
	Create(ctx context.Context, tx *sqlx.Tx, values url.Values) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, id int64, values url.Values) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type keyed interface {
	PrimaryKey() int64
}

type table[T keyed] struct {
	name     string
	singular string
	label    string
	table    string
	key      string
	fields   []FieldSpec
	// bind reads a full row from the form; id is zero on create.
	bind func(f *Form, id int64) T
	// decorate attaches parent rows for display. Nil lists plain rows.
	decorate func(ctx context.Context, q sqlx.QueryerContext, rows []T) (interface{}, error)
}

func (t *table[T]) Name() string        { return t.name }
func (t *table[T]) Singular() string    { return t.singular }
func (t *table[T]) Label() string       { return t.label }
func (t *table[T]) Fields() []FieldSpec { return t.fields }

func (t *table[T]) columns() []string {
	cols := make([]string, 0, len(t.fields))
	for _, field := range t.fields {
		cols = append(cols, field.Name)
	}
	return cols
}

func (t *table[T]) selectList() string {
	cols := append([]string{t.key}, t.columns()...)
	return quoteAll(cols)
}

func (t *table[T]) List(ctx context.Context, q sqlx.QueryerContext) (interface{}, error) {
	rows := []T{}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, t.selectList(), t.table, quote(t.key))
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, MapStoreError(err, "list "+t.name)
	}
	if t.decorate == nil {
		return rows, nil
	}
	decorated, err := t.decorate(ctx, q, rows)
	if err != nil {
		return nil, MapStoreError(err, "decorate "+t.name)
	}
	return decorated, nil
}

func (t *table[T]) Get(ctx context.Context, q sqlx.QueryerContext, id int64) (interface{}, error) {
	return t.get(ctx, q, id)
}

func (t *table[T]) get(ctx context.Context, q sqlx.QueryerContext, id int64) (T, error) {
	var row T
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, t.selectList(), t.table, quote(t.key))
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, ErrNotFound(t.label + " not found")
		}
		return row, MapStoreError(err, "get "+t.singular)
	}
	return row, nil
}

// lock holds the row for the rest of the transaction, so edits against a
// missing row fail as not found before the form is looked at.
func (t *table[T]) lock(ctx context.Context, tx *sqlx.Tx, id int64) error {
	var one int
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, t.table, quote(t.key))
	if err := tx.GetContext(ctx, &one, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound(t.label + " not found")
		}
		return MapStoreError(err, "lock "+t.singular)
	}
	return nil
}

// byKeys fetches the rows with the given keys in one query.
func (t *table[T]) byKeys(ctx context.Context, q sqlx.QueryerContext, ids []int64) (map[int64]T, error) {
	found := map[int64]T{}
	ids = uniqueKeys(ids)
	if len(ids) == 0 {
		return found, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM %s WHERE %s IN (?)`, t.selectList(), t.table, quote(t.key)), ids)
	if err != nil {
		return nil, err
	}
	rows := []T{}
	if err := sqlx.SelectContext(ctx, q, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		found[row.PrimaryKey()] = row
	}
	return found, nil
}

func (t *table[T]) bindRow(values url.Values, id int64) (T, error) {
	form := NewForm(values)
	row := t.bind(form, id)
	if err := form.Err(); err != nil {
		return row, err
	}
	if err := ValidateRow(row); err != nil {
		return row, err
	}
	return row, nil
}

func (t *table[T]) Create(ctx context.Context, tx *sqlx.Tx, values url.Values) (int64, error) {
	row, err := t.bindRow(values, 0)
	if err != nil {
		return 0, err
	}
	cols := t.columns()
	named := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		t.table, quoteAll(cols), namedAll(cols), quote(t.key))
	query, args, err := sqlx.Named(named, row)
	if err != nil {
		return 0, WrapError(err, "bind "+t.singular)
	}
	var id int64
	if err := tx.QueryRowxContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...).Scan(&id); err != nil {
		return 0, MapStoreError(err, "insert "+t.singular)
	}
	return id, nil
}

func (t *table[T]) Update(ctx context.Context, tx *sqlx.Tx, id int64, values url.Values) error {
	if err := t.lock(ctx, tx, id); err != nil {
		return err
	}
	row, err := t.bindRow(values, id)
	if err != nil {
		return err
	}
	cols := t.columns()
	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		sets = append(sets, quote(col)+" = :"+col)
	}
	named := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = :%s`, t.table, strings.Join(sets, ", "), quote(t.key), t.key)
	query, args, err := sqlx.Named(named, row)
	if err != nil {
		return WrapError(err, "bind "+t.singular)
	}
	result, err := tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return MapStoreError(err, "update "+t.singular)
	}
	return requireAffected(result, t.label)
}

func (t *table[T]) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.table, quote(t.key))
	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return MapStoreError(err, "delete "+t.singular)
	}
	return requireAffected(result, t.label)
}

func requireAffected(result sql.Result, label string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return WrapError(err, "rows affected")
	}
	if affected == 0 {
		return ErrNotFound(label + " not found")
	}
	return nil
}

func quote(name string) string {
	return `"` + name + `"`
}

func quoteAll(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, quote(name))
	}
	return strings.Join(quoted, ", ")
}

func namedAll(names []string) string {
	params := make([]string, 0, len(names))
	for _, name := range names {
		params = append(params, ":"+name)
	}
	return strings.Join(params, ", ")
}

func uniqueKeys(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
