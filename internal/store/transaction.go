package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionCtxKeyT int8

const transactionCtxKey = transactionCtxKeyT(1)

// TransactionManager hands out the pool or, inside TxFn, the transaction
// bound to the context.
type TransactionManager struct {
	con *pgxpool.Pool
}

func NewTransactionManager(con *pgxpool.Pool) *TransactionManager {
	return &TransactionManager{con: con}
}

func (s *TransactionManager) getContextTransaction(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(transactionCtxKey).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// GetConnection returns the active transaction when one is bound to the
// context, otherwise the pool.
func (s *TransactionManager) GetConnection(ctx context.Context) Connection {
	if tx := s.getContextTransaction(ctx); tx != nil {
		return tx
	}
	return s.con
}

// TxFn runs f inside a transaction, reusing one already bound to the
// context. The transaction commits when f returns nil and rolls back
// otherwise.
func (s *TransactionManager) TxFn(ctx context.Context, f func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	tx := s.getContextTransaction(ctx)
	if tx != nil {
		return f(ctx)
	}

	tx, err := s.con.Begin(ctx)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	ctxWithTx := context.WithValue(ctx, transactionCtxKey, tx)

	defer func() { _ = tx.Rollback(ctx) }()

	if err := f(ctxWithTx); err != nil {
		return fmt.Errorf("transaction function: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("transaction commit: %w", err)
	}
	return nil
}
