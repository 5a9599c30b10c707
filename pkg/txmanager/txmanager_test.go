package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
)

type fakeBeginner struct {
	begun      int
	commitErrs []error // consumed one per commit
	rollbacks  int
}

func (b *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return &fakeTx{b: b}, nil
}

type fakeTx struct{ b *fakeBeginner }

func (t *fakeTx) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }
func (t *fakeTx) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, nil
}
func (t *fakeTx) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	if len(t.b.commitErrs) == 0 {
		return nil
	}
	err := t.b.commitErrs[0]
	t.b.commitErrs = t.b.commitErrs[1:]
	return err
}

func (t *fakeTx) Rollback() error {
	t.b.rollbacks++
	return nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesCommitSerializationFailure(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr()}}
	mgr := NewTransactionManager(db)

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, db.begun)
}

func TestDoSerializable_RetriesWrappedFnFailure(t *testing.T) {
	// A serialization failure surfacing from a statement inside the
	// transaction arrives wrapped by the repository and use case layers.
	db := &fakeBeginner{}
	mgr := NewTransactionManager(db)

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("internal error: failed to book seat: %w",
				fmt.Errorf("repository: execute update: %w", serializationErr()))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, db.rollbacks)
}

func TestDoSerializable_GivesUpAfterRetries(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr(), serializationErr()}}
	mgr := NewTransactionManager(db)

	err := mgr.DoSerializable(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, 3, db.begun)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	db := &fakeBeginner{}
	mgr := NewTransactionManager(db)

	sentinel := errors.New("slot is fully booked")
	calls := 0
	err := mgr.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, db.rollbacks)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(errors.New("connection reset")))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))

	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))
}
