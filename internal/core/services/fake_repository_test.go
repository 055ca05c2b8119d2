package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	"github.com/SscSPs/billing_engine/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// memState is a snapshot of the fake database.
type memState struct {
	docs     map[string]domain.Document
	items    map[string][]domain.LineItem
	counters map[domain.DocumentType]int64
	payments map[string]decimal.Decimal
}

func newMemState() memState {
	return memState{
		docs:     map[string]domain.Document{},
		items:    map[string][]domain.LineItem{},
		counters: map[domain.DocumentType]int64{},
		payments: map[string]decimal.Decimal{},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for k, v := range s.docs {
		c.docs[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]domain.LineItem(nil), v...)
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

// fakeDocumentRepository is an in-memory DocumentRepositoryWithTx. Transactions run one at a time
// against a private copy of the state that replaces the committed state only when fn succeeds.
type fakeDocumentRepository struct {
	mu    sync.Mutex
	state memState

	// failures makes the named DocumentTxWriter method return the given error.
	failures map[string]error
	// duplicates makes the next N InsertDocument calls report a number collision.
	duplicates int
	commits    int
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{state: newMemState(), failures: map[string]error{}}
}

var _ portsrepo.DocumentRepositoryWithTx = (*fakeDocumentRepository)(nil)

func (r *fakeDocumentRepository) failOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[method] = err
}

func (r *fakeDocumentRepository) addPayment(documentID string, amount decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.payments[documentID] = r.state.payments[documentID].Add(amount)
}

func (r *fakeDocumentRepository) documentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.docs)
}

func (r *fakeDocumentRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.DocumentTxWriter) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.state.clone()
	if err := fn(ctx, &fakeDocumentTx{repo: r, state: &working}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewPersistenceError("commit aborted", err)
	}
	r.state = working
	r.commits++
	return nil
}

func (r *fakeDocumentRepository) FindDocumentByID(_ context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.state.docs[documentID]
	if !ok || doc.DocumentType != documentType {
		return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return &doc, nil
}

func (r *fakeDocumentRepository) FindDocumentByIDAnyType(_ context.Context, documentID string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.state.docs[documentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return &doc, nil
}

func (r *fakeDocumentRepository) FindLineItemsByDocumentID(_ context.Context, documentID string) ([]domain.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LineItem{}, r.state.items[documentID]...), nil
}

func (r *fakeDocumentRepository) ListDocuments(_ context.Context, filter domain.DocumentFilter, limit int, _ *string) ([]domain.Document, *string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var docs []domain.Document
	for _, d := range r.state.docs {
		if d.DocumentType != filter.DocumentType {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].DocumentNumber > docs[j].DocumentNumber })
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil, nil
}

type fakeDocumentTx struct {
	repo  *fakeDocumentRepository
	state *memState
}

func (t *fakeDocumentTx) fail(method string) error {
	return t.repo.failures[method]
}

func (t *fakeDocumentTx) FindDocumentForUpdate(_ context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error) {
	if err := t.fail("FindDocumentForUpdate"); err != nil {
		return nil, err
	}
	doc, ok := t.state.docs[documentID]
	if !ok || doc.DocumentType != documentType {
		return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return &doc, nil
}

func (t *fakeDocumentTx) FindLineItems(_ context.Context, documentID string) ([]domain.LineItem, error) {
	if err := t.fail("FindLineItems"); err != nil {
		return nil, err
	}
	return append([]domain.LineItem{}, t.state.items[documentID]...), nil
}

func (t *fakeDocumentTx) AllocateDocumentNumber(_ context.Context, documentType domain.DocumentType) (string, error) {
	if err := t.fail("AllocateDocumentNumber"); err != nil {
		return "", err
	}
	var highest int64
	for _, d := range t.state.docs {
		if d.DocumentType != documentType {
			continue
		}
		if n, ok := billing.LastSequence(d.DocumentNumber); ok && n > highest {
			highest = n
		}
	}
	lastNumber := ""
	if highest > 0 {
		lastNumber = billing.FormatDocumentNumber(documentType.NumberPrefix(), highest)
	}
	next := billing.NextSequence(t.state.counters[documentType], lastNumber)
	t.state.counters[documentType] = next
	return billing.FormatDocumentNumber(documentType.NumberPrefix(), next), nil
}

func (t *fakeDocumentTx) InsertDocument(_ context.Context, document domain.Document) error {
	if err := t.fail("InsertDocument"); err != nil {
		return err
	}
	if t.repo.duplicates > 0 {
		t.repo.duplicates--
		return apperrors.NewAppError(apperrors.ErrDuplicate, "document number "+document.DocumentNumber+" is taken", nil)
	}
	for _, d := range t.state.docs {
		if d.DocumentType == document.DocumentType && d.DocumentNumber == document.DocumentNumber {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "document number "+document.DocumentNumber+" is taken", nil)
		}
	}
	if err := document.ExtendedAttributes.Validate(); err != nil {
		return err
	}
	document.LineItems = nil
	t.state.docs[document.DocumentID] = document
	return nil
}

func (t *fakeDocumentTx) UpdateDocument(_ context.Context, document domain.Document) error {
	if err := t.fail("UpdateDocument"); err != nil {
		return err
	}
	if _, ok := t.state.docs[document.DocumentID]; !ok {
		return apperrors.NewNotFoundError("document " + document.DocumentID + " not found")
	}
	document.LineItems = nil
	t.state.docs[document.DocumentID] = document
	return nil
}

func (t *fakeDocumentTx) InsertLineItems(_ context.Context, items []domain.LineItem) error {
	if err := t.fail("InsertLineItems"); err != nil {
		return err
	}
	for _, item := range items {
		t.state.items[item.DocumentID] = append(t.state.items[item.DocumentID], item)
	}
	return nil
}

func (t *fakeDocumentTx) DeleteLineItems(_ context.Context, documentID string) error {
	if err := t.fail("DeleteLineItems"); err != nil {
		return err
	}
	delete(t.state.items, documentID)
	return nil
}

func (t *fakeDocumentTx) DeleteDocument(_ context.Context, documentType domain.DocumentType, documentID string) error {
	if err := t.fail("DeleteDocument"); err != nil {
		return err
	}
	doc, ok := t.state.docs[documentID]
	if !ok || doc.DocumentType != documentType {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	if _, hasPayments := t.state.payments[documentID]; hasPayments {
		return apperrors.NewConflictError("document "+documentID+" is still referenced by payments", nil)
	}
	delete(t.state.docs, documentID)
	delete(t.state.items, documentID)
	return nil
}

func (t *fakeDocumentTx) UpdateDocumentStatus(_ context.Context, documentType domain.DocumentType, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	if err := t.fail("UpdateDocumentStatus"); err != nil {
		return err
	}
	doc, ok := t.state.docs[documentID]
	if !ok || doc.DocumentType != documentType {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	doc.Status = status
	doc.LastUpdatedBy = updatedBy
	doc.LastUpdatedAt = updatedAt
	t.state.docs[documentID] = doc
	return nil
}

func (t *fakeDocumentTx) UpdateExtendedAttributes(_ context.Context, documentID string, attrs domain.ExtendedAttributes, updatedBy string, updatedAt time.Time) error {
	if err := t.fail("UpdateExtendedAttributes"); err != nil {
		return err
	}
	if err := attrs.Validate(); err != nil {
		return err
	}
	doc, ok := t.state.docs[documentID]
	if !ok {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	doc.ExtendedAttributes = attrs
	doc.LastUpdatedBy = updatedBy
	doc.LastUpdatedAt = updatedAt
	t.state.docs[documentID] = doc
	return nil
}
