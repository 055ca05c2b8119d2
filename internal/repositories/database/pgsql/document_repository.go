package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	"github.com/SscSPs/billing_engine/internal/models"
	"github.com/SscSPs/billing_engine/internal/utils/mapping"
	"github.com/SscSPs/billing_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `
	document_id, document_type, document_number, party_id, document_date, due_date, status,
	sub_total, discount_total, additional_charges_total, taxable_amount, tcs_amount,
	tax_amount_total, sgst_total, cgst_total, igst_total, tax_total, grand_total,
	extended_attributes, created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `
	line_item_id, document_id, position, description, hsn_code, unit_of_measure,
	quantity, rate, discount_percent, tax_percent, sgst_percent, cgst_percent, igst_percent,
	base_amount, discount_amount, taxable_amount, tax_amount, sgst_amount, cgst_amount, igst_amount,
	line_total, created_at, created_by, last_updated_at, last_updated_by`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document headers and line items.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryWithTx
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

// WithinTransaction runs fn in a single database transaction.
func (r *PgxDocumentRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.DocumentTxWriter) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Rollback must still reach the server when ctx has already been cancelled.
	defer func() { _ = r.Rollback(context.WithoutCancel(ctx), tx) }()

	if err := fn(ctx, &pgxDocumentTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindDocumentByID retrieves a document header of the given type.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND document_type = $2;`
	return scanDocument(r.Pool.QueryRow(ctx, query, documentID, documentType), documentID)
}

// FindDocumentByIDAnyType retrieves a document header regardless of its type.
func (r *PgxDocumentRepository) FindDocumentByIDAnyType(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	return scanDocument(r.Pool.QueryRow(ctx, query, documentID), documentID)
}

// FindLineItemsByDocumentID retrieves the line items of a document ordered by position.
func (r *PgxDocumentRepository) FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	return findLineItems(ctx, r.Pool, documentID)
}

// ListDocuments retrieves a page of documents using token-based pagination.
// It returns the documents, a token for the next page (if any), and an error.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions := []string{"document_type = $1"}
	args := []any{filter.DocumentType}
	addArg := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.Status != nil {
		addArg("status = ?", *filter.Status)
	}
	if filter.PartyID != nil {
		addArg("party_id = ?", *filter.PartyID)
	}
	if filter.DateFrom != nil {
		addArg("document_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("document_date <= ?", *filter.DateTo)
	}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid nextToken", err)
		}
		// Tuple comparison keeps the cursor consistent with the ORDER BY below.
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
		n := len(args)
		conditions = append(conditions, "(document_date, created_at, document_id) < ($"+strconv.Itoa(n-2)+", $"+strconv.Itoa(n-1)+", $"+strconv.Itoa(n)+"::uuid)")
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + documentColumns + ` FROM documents WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY document_date DESC, created_at DESC, document_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewPersistenceError("failed to query documents of type "+string(filter.DocumentType), err)
	}
	modelDocs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		return nil, nil, apperrors.NewPersistenceError("failed to scan document rows", err)
	}

	var nextTokenVal *string
	if len(modelDocs) > limit {
		// The token points to the last item included in this page.
		last := modelDocs[limit-1]
		token := pagination.EncodeToken(last.DocumentDate, last.CreatedAt, last.DocumentID)
		nextTokenVal = &token
		modelDocs = modelDocs[:limit]
	}

	documents := make([]domain.Document, 0, len(modelDocs))
	for _, m := range modelDocs {
		d, err := mapping.ToDomainDocument(m)
		if err != nil {
			return nil, nil, apperrors.NewPersistenceError("failed to map document "+m.DocumentID, err)
		}
		documents = append(documents, d)
	}
	return documents, nextTokenVal, nil
}

// pgxDocumentTx implements portsrepo.DocumentTxWriter on an open transaction.
type pgxDocumentTx struct {
	tx pgx.Tx
}

var _ portsrepo.DocumentTxWriter = (*pgxDocumentTx)(nil)

// FindDocumentForUpdate loads and row-locks a document header of the given type.
func (t *pgxDocumentTx) FindDocumentForUpdate(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND document_type = $2 FOR UPDATE;`
	return scanDocument(t.tx.QueryRow(ctx, query, documentID, documentType), documentID)
}

func (t *pgxDocumentTx) FindLineItems(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	return findLineItems(ctx, t.tx, documentID)
}

func (t *pgxDocumentTx) AllocateDocumentNumber(ctx context.Context, documentType domain.DocumentType) (string, error) {
	return allocateDocumentNumber(ctx, t.tx, documentType)
}

// InsertDocument inserts the header row.
func (t *pgxDocumentTx) InsertDocument(ctx context.Context, document domain.Document) error {
	m, err := mapping.ToModelDocument(document)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = t.tx.Exec(ctx, query,
		m.DocumentID,
		m.DocumentType,
		m.DocumentNumber,
		m.PartyID,
		m.DocumentDate,
		m.DueDate,
		m.Status,
		m.SubTotal,
		m.DiscountTotal,
		m.AdditionalChargesTotal,
		m.TaxableAmount,
		m.TCSAmount,
		m.TaxAmountTotal,
		m.SGSTTotal,
		m.CGSTTotal,
		m.IGSTTotal,
		m.TaxTotal,
		m.GrandTotal,
		m.ExtendedAttributes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to insert document "+m.DocumentNumber, err)
	}
	return nil
}

// UpdateDocument rewrites every mutable header column. Number, type and creation audit are untouched.
func (t *pgxDocumentTx) UpdateDocument(ctx context.Context, document domain.Document) error {
	m, err := mapping.ToModelDocument(document)
	if err != nil {
		return err
	}
	query := `
		UPDATE documents SET
			party_id = $3, document_date = $4, due_date = $5, status = $6,
			sub_total = $7, discount_total = $8, additional_charges_total = $9, taxable_amount = $10,
			tcs_amount = $11, tax_amount_total = $12, sgst_total = $13, cgst_total = $14, igst_total = $15,
			tax_total = $16, grand_total = $17, extended_attributes = $18,
			last_updated_at = $19, last_updated_by = $20
		WHERE document_id = $1 AND document_type = $2;
	`
	tag, err := t.tx.Exec(ctx, query,
		m.DocumentID,
		m.DocumentType,
		m.PartyID,
		m.DocumentDate,
		m.DueDate,
		m.Status,
		m.SubTotal,
		m.DiscountTotal,
		m.AdditionalChargesTotal,
		m.TaxableAmount,
		m.TCSAmount,
		m.TaxAmountTotal,
		m.SGSTTotal,
		m.CGSTTotal,
		m.IGSTTotal,
		m.TaxTotal,
		m.GrandTotal,
		m.ExtendedAttributes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to update document "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + m.DocumentID + " not found")
	}
	return nil
}

// InsertLineItems inserts all items in one batch.
func (t *pgxDocumentTx) InsertLineItems(ctx context.Context, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO document_line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelLineItem(item)
		batch.Queue(query,
			m.LineItemID,
			m.DocumentID,
			m.Position,
			m.Description,
			m.HSNCode,
			m.UnitOfMeasure,
			m.Quantity,
			m.Rate,
			m.DiscountPercent,
			m.TaxPercent,
			m.SGSTPercent,
			m.CGSTPercent,
			m.IGSTPercent,
			m.BaseAmount,
			m.DiscountAmount,
			m.TaxableAmount,
			m.TaxAmount,
			m.SGSTAmount,
			m.CGSTAmount,
			m.IGSTAmount,
			m.LineTotal,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	// Close the batch results to surface the error of any queued insert.
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to insert line items for document "+items[0].DocumentID, err)
	}
	return nil
}

func (t *pgxDocumentTx) DeleteLineItems(ctx context.Context, documentID string) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM document_line_items WHERE document_id = $1;`, documentID); err != nil {
		return mapWriteError("failed to delete line items for document "+documentID, err)
	}
	return nil
}

// DeleteDocument removes the header row; line items cascade.
func (t *pgxDocumentTx) DeleteDocument(ctx context.Context, documentType domain.DocumentType, documentID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1 AND document_type = $2;`, documentID, documentType)
	if err != nil {
		return mapWriteError("failed to delete document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return nil
}

func (t *pgxDocumentTx) UpdateDocumentStatus(ctx context.Context, documentType domain.DocumentType, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE documents SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1 AND document_type = $2;
	`
	tag, err := t.tx.Exec(ctx, query, documentID, documentType, status, updatedAt, updatedBy)
	if err != nil {
		return mapWriteError("failed to update status of document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return nil
}

func (t *pgxDocumentTx) UpdateExtendedAttributes(ctx context.Context, documentID string, attrs domain.ExtendedAttributes, updatedBy string, updatedAt time.Time) error {
	raw, err := domain.MarshalExtendedAttributes(attrs)
	if err != nil {
		return err
	}
	query := `
		UPDATE documents SET extended_attributes = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query, documentID, raw, updatedAt, updatedBy)
	if err != nil {
		return mapWriteError("failed to update extended attributes of document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return nil
}

func scanDocument(row pgx.Row, documentID string) (*domain.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.DocumentType,
		&m.DocumentNumber,
		&m.PartyID,
		&m.DocumentDate,
		&m.DueDate,
		&m.Status,
		&m.SubTotal,
		&m.DiscountTotal,
		&m.AdditionalChargesTotal,
		&m.TaxableAmount,
		&m.TCSAmount,
		&m.TaxAmountTotal,
		&m.SGSTTotal,
		&m.CGSTTotal,
		&m.IGSTTotal,
		&m.TaxTotal,
		&m.GrandTotal,
		&m.ExtendedAttributes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
		}
		return nil, apperrors.NewPersistenceError("failed to find document "+documentID, err)
	}

	d, err := mapping.ToDomainDocument(m)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to map document "+documentID, err)
	}
	return &d, nil
}

func findLineItems(ctx context.Context, q querier, documentID string) ([]domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM document_line_items WHERE document_id = $1 ORDER BY position;`
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query line items for document "+documentID, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LineItem])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan line items for document "+documentID, err)
	}
	return mapping.ToDomainLineItemSlice(items), nil
}
