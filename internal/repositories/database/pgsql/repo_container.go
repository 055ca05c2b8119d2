package pgsql

import (
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo: newPgxDocumentRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
	}
}
