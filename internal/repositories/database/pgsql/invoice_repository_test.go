package pgsql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehousing/invoicing_backend/internal/core/domain"
)

// fakeSequenceTx records the statements NextSequenceNumber issues and plays
// back a canned current-max row, so the allocation query can be pinned
// without a live database.
type fakeSequenceTx struct {
	pgx.Tx
	execSQL   []string
	execArgs  [][]any
	querySQL  string
	queryArgs []any
	current   string
	noRows    bool
}

func (t *fakeSequenceTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execSQL = append(t.execSQL, sql)
	t.execArgs = append(t.execArgs, args)
	return pgconn.CommandTag{}, nil
}

func (t *fakeSequenceTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.querySQL = sql
	t.queryArgs = args
	if t.noRows {
		return sequenceRow{err: pgx.ErrNoRows}
	}
	return sequenceRow{value: t.current}
}

type sequenceRow struct {
	value string
	err   error
}

func (r sequenceRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

func TestNextSequenceNumberFirstOfEachSeries(t *testing.T) {
	repo := &PgxInvoiceRepository{}

	tx := &fakeSequenceTx{noRows: true}
	seq, err := repo.NextSequenceNumber(context.Background(), tx, 2026, false)
	require.NoError(t, err)
	assert.Equal(t, "2026-001", seq)
	require.Len(t, tx.execArgs, 1)
	assert.Equal(t, []any{"invoice_sequence:2026:false"}, tx.execArgs[0])

	tx = &fakeSequenceTx{noRows: true}
	seq, err = repo.NextSequenceNumber(context.Background(), tx, 2026, true)
	require.NoError(t, err)
	assert.Equal(t, "PF-2026-001", seq)
	require.Len(t, tx.execArgs, 1)
	assert.Equal(t, []any{"invoice_sequence:2026:true"}, tx.execArgs[0],
		"each series takes its own advisory lock")
}

func TestNextSequenceNumberIncrementsCurrentMax(t *testing.T) {
	repo := &PgxInvoiceRepository{}

	tx := &fakeSequenceTx{current: "2026-003"}
	seq, err := repo.NextSequenceNumber(context.Background(), tx, 2026, false)
	require.NoError(t, err)
	assert.Equal(t, "2026-004", seq)

	tx = &fakeSequenceTx{current: "2026-999"}
	seq, err = repo.NextSequenceNumber(context.Background(), tx, 2026, false)
	require.NoError(t, err)
	assert.Equal(t, "2026-1000", seq)

	tx = &fakeSequenceTx{current: "PF-2026-007"}
	seq, err = repo.NextSequenceNumber(context.Background(), tx, 2026, true)
	require.NoError(t, err)
	assert.Equal(t, "PF-2026-008", seq)
}

// The real series counts invoices whose status is outside the pro-forma
// set, the pro-forma series those inside it. The rule lives in the query's
// WHERE clause, so the test pins the statement and its parameters.
func TestNextSequenceNumberSeriesSelection(t *testing.T) {
	repo := &PgxInvoiceRepository{}

	assert.ElementsMatch(t,
		[]string{string(domain.StatusReservation), string(domain.StatusCanceled)},
		proFormaStatuses)

	tx := &fakeSequenceTx{current: "2026-001"}
	_, err := repo.NextSequenceNumber(context.Background(), tx, 2026, false)
	require.NoError(t, err)
	assert.Equal(t, []any{2026, proFormaStatuses, false}, tx.queryArgs)
	assert.Contains(t, tx.querySQL, "(status = ANY($2::text[])) = $3")
	assert.Contains(t, tx.querySQL, "ORDER BY length(sequence_number) DESC, sequence_number DESC",
		"suffixes past 999 must still sort numerically")

	tx = &fakeSequenceTx{current: "PF-2026-001"}
	_, err = repo.NextSequenceNumber(context.Background(), tx, 2026, true)
	require.NoError(t, err)
	assert.Equal(t, []any{2026, proFormaStatuses, true}, tx.queryArgs)
}
