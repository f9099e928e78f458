package store

import (
	"context"
	"time"
)

// FEMTable is the table holding contact-form records.
const FEMTable = "fem_records"

// FEM is a contact-form record: who asked for a simulation and what they
// wrote.
type FEM struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *FEM) CreateColumnMap() map[string]any {
	return map[string]any{
		"name":       f.Name,
		"email":      f.Email,
		"message":    f.Message,
		"created_at": f.CreatedAt,
		"updated_at": f.UpdatedAt,
	}
}

func (f *FEM) ReturningColumnMap() map[string]any {
	return map[string]any{
		"id": &f.ID,
	}
}

func (f *FEM) UpdateColumnMap() map[string]any {
	return map[string]any{
		"name":       f.Name,
		"email":      f.Email,
		"message":    f.Message,
		"updated_at": f.UpdatedAt,
	}
}

func (f *FEM) PKColumnMap() map[string]any {
	return map[string]any{
		"id": f.ID,
	}
}

func (f *FEM) ListColumnMap() map[string]any {
	return map[string]any{
		"id":         &f.ID,
		"name":       &f.Name,
		"email":      &f.Email,
		"message":    &f.Message,
		"created_at": &f.CreatedAt,
		"updated_at": &f.UpdatedAt,
	}
}

func (f *FEM) DefaultSortColumns() []string {
	return []string{"id"}
}

// FEMStore is the domain face of the generic model store for FEM records.
type FEMStore struct {
	ms  *ModelStore
	now func() time.Time
}

// NewFEMStore builds a FEM record store over the given connection.
func NewFEMStore(con Connection) *FEMStore {
	return &FEMStore{
		ms:  NewModelStore(con, FEMTable),
		now: time.Now,
	}
}

// EnsureSchema creates the records table when missing.
func (s *FEMStore) EnsureSchema(ctx context.Context) error {
	_, err := s.ms.Con.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+FEMTable+` (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			message    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// Create inserts a record, stamping timestamps and filling the id.
func (s *FEMStore) Create(ctx context.Context, f *FEM) error {
	ts := s.now().UTC()
	f.CreatedAt = ts
	f.UpdatedAt = ts
	return s.ms.Create(ctx, f)
}

// Get loads one record by id.
func (s *FEMStore) Get(ctx context.Context, id int64) (*FEM, error) {
	f := &FEM{ID: id}
	if err := s.ms.Get(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Update rewrites a record's mutable columns.
func (s *FEMStore) Update(ctx context.Context, f *FEM) error {
	f.UpdatedAt = s.now().UTC()
	return s.ms.Update(ctx, f)
}

// Delete removes a record by id.
func (s *FEMStore) Delete(ctx context.Context, id int64) error {
	return s.ms.Delete(ctx, &FEM{ID: id})
}

// List returns a page of records and, when requested, the total row count.
func (s *FEMStore) List(ctx context.Context, params ListParams) ([]*FEM, int64, error) {
	var items []*FEM
	total, err := s.ms.List(ctx, params,
		func() ListModel { return &FEM{} },
		func(m ListModel) { items = append(items, m.(*FEM)) },
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
