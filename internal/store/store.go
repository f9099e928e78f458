// Package store persists FEM contact records in PostgreSQL. Queries are
// built with squirrel over a pgx connection pool; models describe their
// columns through map interfaces so the store stays free of per-table SQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a primary key matches no row.
var ErrNotFound = errors.New("record not found")

// Connection is the subset of pgxpool.Pool the store uses; transactions
// satisfy it too.
type Connection interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateModel exposes the columns written on insert and the columns scanned
// back from RETURNING.
type CreateModel interface {
	CreateColumnMap() map[string]any
	ReturningColumnMap() map[string]any
}

// UpdateModel exposes the columns written on update and the primary key.
type UpdateModel interface {
	UpdateColumnMap() map[string]any
	PKColumnMap() map[string]any
}

// GetModel exposes scan targets per column and the primary key.
type GetModel interface {
	ListColumnMap() map[string]any
	PKColumnMap() map[string]any
}

// ListModel exposes scan targets per column and a default sort order.
type ListModel interface {
	ListColumnMap() map[string]any
	DefaultSortColumns() []string
}

// DeleteModel exposes the primary key.
type DeleteModel interface {
	PKColumnMap() map[string]any
}

// ListParams selects, pages and orders a List call.
type ListParams struct {
	Conditions     map[string]any
	Page           int64
	PageSize       int64
	Sort           []string
	WithTotalCount bool
}

// ModelStore runs generic CRUD over one table.
type ModelStore struct {
	Con       Connection
	QB        squirrel.StatementBuilderType
	TableName string
}

// NewModelStore builds a store with PostgreSQL placeholders.
func NewModelStore(con Connection, table string) *ModelStore {
	return &ModelStore{
		Con:       con,
		QB:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		TableName: table,
	}
}

// Create inserts the model and scans RETURNING columns back into it.
func (s *ModelStore) Create(ctx context.Context, m CreateModel) error {
	query, args, returning, err := s.buildCreate(m)
	if err != nil {
		return err
	}
	if len(returning) > 0 {
		if err := s.Con.QueryRow(ctx, query, args...).Scan(returning...); err != nil {
			return fmt.Errorf("fail to query: %w", err)
		}
		return nil
	}
	if _, err := s.Con.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("fail to exec: %w", err)
	}
	return nil
}

func (s *ModelStore) buildCreate(m CreateModel) (string, []any, []any, error) {
	qb := s.QB.Insert(s.TableName).SetMap(m.CreateColumnMap())

	returningMap := m.ReturningColumnMap()
	names := sortedKeys(returningMap)
	pointers := make([]any, 0, len(names))
	for _, k := range names {
		pointers = append(pointers, returningMap[k])
	}
	if len(names) > 0 {
		qb = qb.Suffix(`RETURNING ` + strings.Join(names, ","))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, nil, fmt.Errorf("fail to build query: %w", err)
	}
	return query, args, pointers, nil
}

// Update writes the model's update columns to the row matching its primary
// key. A missing row yields ErrNotFound.
func (s *ModelStore) Update(ctx context.Context, m UpdateModel) error {
	query, args, err := s.buildUpdate(m)
	if err != nil {
		return err
	}
	tag, err := s.Con.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("fail to exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ModelStore) buildUpdate(m UpdateModel) (string, []any, error) {
	query, args, err := s.QB.Update(s.TableName).
		SetMap(m.UpdateColumnMap()).
		Where(squirrel.Eq(m.PKColumnMap())).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("fail to build query: %w", err)
	}
	return query, args, nil
}

// Delete removes the row matching the model's primary key.
func (s *ModelStore) Delete(ctx context.Context, m DeleteModel) error {
	query, args, err := s.buildDelete(m)
	if err != nil {
		return err
	}
	tag, err := s.Con.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("fail to exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ModelStore) buildDelete(m DeleteModel) (string, []any, error) {
	query, args, err := s.QB.Delete(s.TableName).
		Where(squirrel.Eq(m.PKColumnMap())).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("fail to build query: %w", err)
	}
	return query, args, nil
}

// Get loads the row matching the model's primary key into it.
func (s *ModelStore) Get(ctx context.Context, m GetModel) error {
	query, args, pointers, err := s.buildGet(m)
	if err != nil {
		return err
	}
	if err := s.Con.QueryRow(ctx, query, args...).Scan(pointers...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("fail to query: %w", err)
	}
	return nil
}

func (s *ModelStore) buildGet(m GetModel) (string, []any, []any, error) {
	columnMap := m.ListColumnMap()
	names := sortedKeys(columnMap)
	pointers := make([]any, 0, len(names))
	for _, k := range names {
		pointers = append(pointers, columnMap[k])
	}
	query, args, err := s.QB.Select(names...).
		From(s.TableName).
		Where(squirrel.Eq(m.PKColumnMap())).
		ToSql()
	if err != nil {
		return "", nil, nil, fmt.Errorf("fail to build query: %w", err)
	}
	return query, args, pointers, nil
}

// List scans matching rows into models produced by newItem, handing each
// scanned model to collect. It returns the unpaged row count when
// params.WithTotalCount is set. newItem must be side-effect free; it is
// also called once for column discovery.
func (s *ModelStore) List(ctx context.Context, params ListParams, newItem func() ListModel, collect func(ListModel)) (int64, error) {
	query, args, names, err := s.buildList(newItem(), params)
	if err != nil {
		return 0, err
	}

	rows, err := s.Con.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("fail to query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := newItem()
		columnMap := item.ListColumnMap()
		pointers := make([]any, 0, len(names))
		for _, k := range names {
			pointers = append(pointers, columnMap[k])
		}
		if err := rows.Scan(pointers...); err != nil {
			return 0, fmt.Errorf("fail to scan: %w", err)
		}
		collect(item)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("fail to read rows: %w", err)
	}

	if !params.WithTotalCount {
		return 0, nil
	}
	return s.count(ctx, params)
}

func (s *ModelStore) buildList(m ListModel, params ListParams) (string, []any, []string, error) {
	names := sortedKeys(m.ListColumnMap())
	qb := s.QB.Select(names...).From(s.TableName)
	if len(params.Conditions) > 0 {
		qb = qb.Where(squirrel.Eq(params.Conditions))
	}

	sort := params.Sort
	if len(sort) == 0 {
		sort = m.DefaultSortColumns()
	}
	for _, col := range sort {
		if col == "" {
			continue
		}
		if strings.HasPrefix(col, "-") {
			qb = qb.OrderBy(col[1:] + " DESC")
		} else {
			qb = qb.OrderBy(col + " ASC")
		}
	}

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
		if params.Page > 1 {
			qb = qb.Offset(uint64((params.Page - 1) * params.PageSize))
		}
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, nil, fmt.Errorf("fail to build query: %w", err)
	}
	return query, args, names, nil
}

func (s *ModelStore) count(ctx context.Context, params ListParams) (int64, error) {
	qb := s.QB.Select("count(*)").From(s.TableName)
	if len(params.Conditions) > 0 {
		qb = qb.Where(squirrel.Eq(params.Conditions))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("fail to build query: %w", err)
	}
	var n int64
	if err := s.Con.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("fail to query: %w", err)
	}
	return n, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// deterministic column order keeps queries stable across calls
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
