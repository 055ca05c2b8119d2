//go:build integration

package pgsql

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	"github.com/SscSPs/billing_engine/internal/utils/billing"
	"github.com/SscSPs/billing_engine/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: BILLING_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repositories/...
const testDatabaseURLEnv = "BILLING_TEST_DATABASE_URL"

func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	databaseURL := os.Getenv(testDatabaseURLEnv)
	if databaseURL == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	require.NoError(t, database.RunMigrations(slog.Default(), databaseURL, "file://../../../../migrations", database.MigrateUp))

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, databaseURL, 8, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE payments, document_line_items, documents, document_sequences;`)
	require.NoError(t, err)
	return pool
}

func sequenceDocument(documentType domain.DocumentType, number string) domain.Document {
	now := time.Now().UTC()
	return domain.Document{
		DocumentID:     uuid.NewString(),
		DocumentType:   documentType,
		DocumentNumber: number,
		PartyID:        "party-1",
		Date:           now,
		Status:         domain.StatusDraft,
		ExtendedAttributes: domain.ExtendedAttributes{
			SchemaVersion: domain.ExtendedAttributesSchemaVersion,
			TaxType:       domain.IntraState,
		},
		AuditFields: domain.NewAuditFields("user-1", now),
	}
}

// createNumbered allocates a number and inserts a header with it in one transaction.
func createNumbered(ctx context.Context, repo portsrepo.DocumentRepositoryWithTx, documentType domain.DocumentType) (string, error) {
	var number string
	err := repo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		n, err := tx.AllocateDocumentNumber(ctx, documentType)
		if err != nil {
			return err
		}
		number = n
		return tx.InsertDocument(ctx, sequenceDocument(documentType, n))
	})
	return number, err
}

func sequenceOf(t *testing.T, number string) int64 {
	t.Helper()
	n, ok := billing.LastSequence(number)
	require.True(t, ok, "unparseable number %q", number)
	return n
}

func setCounter(t *testing.T, pool *pgxpool.Pool, documentType domain.DocumentType, value int64) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`UPDATE document_sequences SET last_value = $2 WHERE document_type = $1;`, documentType, value)
	require.NoError(t, err)
}

func TestAllocateDocumentNumber_ConcurrentWriters(t *testing.T) {
	pool := integrationPool(t)
	repo := newPgxDocumentRepository(pool)
	ctx := context.Background()

	const writers = 24
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []int64
		errs    []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := createNumbered(ctx, repo, domain.SalesInvoice)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			n, _ := billing.LastSequence(number)
			numbers = append(numbers, n)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, n := range numbers {
		assert.Equal(t, int64(i+1), n, "numbers must be 1..N without gaps or duplicates")
	}
}

func TestAllocateDocumentNumber_CounterBehindStoredNumbers(t *testing.T) {
	pool := integrationPool(t)
	repo := newPgxDocumentRepository(pool)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := createNumbered(ctx, repo, domain.Proforma)
		require.NoError(t, err)
	}
	setCounter(t, pool, domain.Proforma, 1)

	number, err := createNumbered(ctx, repo, domain.Proforma)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sequenceOf(t, number))

	var counter int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT last_value FROM document_sequences WHERE document_type = $1;`, domain.Proforma).Scan(&counter))
	assert.Equal(t, int64(4), counter, "counter catches up with the stored numbers")
}

func TestAllocateDocumentNumber_CounterAheadOfStoredNumbers(t *testing.T) {
	pool := integrationPool(t)
	repo := newPgxDocumentRepository(pool)
	ctx := context.Background()

	_, err := createNumbered(ctx, repo, domain.DeliveryChallan)
	require.NoError(t, err)
	setCounter(t, pool, domain.DeliveryChallan, 10)

	number, err := createNumbered(ctx, repo, domain.DeliveryChallan)
	require.NoError(t, err)
	assert.Equal(t, int64(11), sequenceOf(t, number))
}

func TestAllocateDocumentNumber_RollbackReleasesNumber(t *testing.T) {
	pool := integrationPool(t)
	repo := newPgxDocumentRepository(pool)
	ctx := context.Background()

	first, err := createNumbered(ctx, repo, domain.CreditNote)
	require.NoError(t, err)

	errAbort := errors.New("abort")
	err = repo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		n, err := tx.AllocateDocumentNumber(ctx, domain.CreditNote)
		require.NoError(t, err)
		assert.Equal(t, sequenceOf(t, first)+1, sequenceOf(t, n))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	next, err := createNumbered(ctx, repo, domain.CreditNote)
	require.NoError(t, err)
	assert.Equal(t, sequenceOf(t, first)+1, sequenceOf(t, next), "a rolled back number is reused")
}
