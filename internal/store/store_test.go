package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *ModelStore {
	return NewModelStore(nil, FEMTable)
}

func TestBuildCreate(t *testing.T) {
	f := &FEM{Name: "ada", Email: "ada@example.com", Message: "hi"}
	query, args, returning, err := testStore().buildCreate(f)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO fem_records")
	assert.Contains(t, query, "RETURNING id")
	assert.Len(t, args, 5)
	require.Len(t, returning, 1)
	assert.Same(t, &f.ID, returning[0].(*int64))
}

func TestBuildUpdate(t *testing.T) {
	f := &FEM{ID: 7, Name: "ada", UpdatedAt: time.Now()}
	query, args, err := testStore().buildUpdate(f)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE fem_records SET")
	assert.Contains(t, query, "WHERE id = $5")
	assert.Contains(t, args, int64(7))
}

func TestBuildDelete(t *testing.T) {
	query, args, err := testStore().buildDelete(&FEM{ID: 3})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM fem_records WHERE id = $1", query)
	assert.Equal(t, []any{int64(3)}, args)
}

func TestBuildGet(t *testing.T) {
	f := &FEM{ID: 9}
	query, args, pointers, err := testStore().buildGet(f)
	require.NoError(t, err)

	// column order is sorted and stable
	assert.Equal(t,
		"SELECT created_at, email, id, message, name, updated_at FROM fem_records WHERE id = $1",
		query)
	assert.Equal(t, []any{int64(9)}, args)
	assert.Len(t, pointers, 6)
}

func TestBuildListDefaults(t *testing.T) {
	query, args, names, err := testStore().buildList(&FEM{}, ListParams{})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM fem_records ORDER BY id ASC")
	assert.Empty(t, args)
	assert.Equal(t, []string{"created_at", "email", "id", "message", "name", "updated_at"}, names)
}

func TestBuildListPagingAndSort(t *testing.T) {
	params := ListParams{
		Conditions: map[string]any{"name": "ada"},
		Page:       3,
		PageSize:   10,
		Sort:       []string{"-created_at", "id"},
	}
	query, args, _, err := testStore().buildList(&FEM{}, params)
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE name = $1")
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "OFFSET 20")
	assert.Equal(t, []any{"ada"}, args)
}

func TestFEMColumnMaps(t *testing.T) {
	f := &FEM{ID: 1, Name: "n", Email: "e", Message: "m"}

	create := f.CreateColumnMap()
	assert.NotContains(t, create, "id")
	assert.Equal(t, "n", create["name"])

	list := f.ListColumnMap()
	assert.Same(t, &f.Name, list["name"].(*string))

	assert.Equal(t, map[string]any{"id": int64(1)}, f.PKColumnMap())
	assert.Equal(t, []string{"id"}, f.DefaultSortColumns())
}

func TestTransactionManagerFallsBackToPool(t *testing.T) {
	tm := NewTransactionManager(nil)
	con := tm.GetConnection(context.Background())

	_, isPool := con.(*pgxpool.Pool)
	assert.True(t, isPool)
	assert.Nil(t, tm.getContextTransaction(context.Background()))
}
