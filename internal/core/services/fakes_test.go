package services_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type accessKey struct{ accountID, userID string }
type linkKey struct{ eventID, transactionID string }

// memStore is an in-memory implementation of every repository port. Writes made
// through the *InTx methods are staged on their memTx and only become visible on
// Commit. FindAccountByIDForUpdate holds a per-account lock until the tx ends.
type memStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	accounts map[string]domain.Account
	access   map[accessKey]domain.AccountAccess
	txns     []domain.Transaction
	seq      int64
	events   map[string]domain.MoneyEvent
	receipts map[string]domain.Receipt
	links    map[linkKey]bool

	rowLocks  map[string]*sync.Mutex
	lockWaits map[string]int

	failUpsertInTx error
	failListByIBAN error
	ibanReads      int

	// Called once the lock is released, so they may call back into the services.
	afterIBANRead   func()
	afterAccessList func()
}

// memTx stages writes until Commit. The embedded pgx.Tx is nil; services only
// ever pass the handle back to the store.
type memTx struct {
	pgx.Tx
	pending []func()
	locked  []*sync.Mutex
	done    bool
}

func (t *memTx) stage(apply func()) {
	t.pending = append(t.pending, apply)
}

func (t *memTx) finish() {
	if t.done {
		return
	}
	t.done = true
	t.pending = nil
	for _, l := range t.locked {
		l.Unlock()
	}
	t.locked = nil
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]domain.User{},
		accounts:  map[string]domain.Account{},
		access:    map[accessKey]domain.AccountAccess{},
		events:    map[string]domain.MoneyEvent{},
		receipts:  map[string]domain.Receipt{},
		links:     map[linkKey]bool{},
		rowLocks:  map[string]*sync.Mutex{},
		lockWaits: map[string]int{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     m,
		AccessRepo:      m,
		TransactionRepo: m,
		UserRepo:        m,
		MoneyEventRepo:  m,
	}
}

var (
	_ portsrepo.AccountRepositoryWithTx     = (*memStore)(nil)
	_ portsrepo.AccessRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryWithTx = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade        = (*memStore)(nil)
	_ portsrepo.MoneyEventRepositoryFacade  = (*memStore)(nil)
)

// --- TransactionManager ---

func (m *memStore) Begin(context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

func (m *memStore) Commit(_ context.Context, tx pgx.Tx) error {
	t := tx.(*memTx)
	m.mu.Lock()
	for _, apply := range t.pending {
		apply()
	}
	m.mu.Unlock()
	t.finish()
	return nil
}

func (m *memStore) Rollback(_ context.Context, tx pgx.Tx) error {
	tx.(*memTx).finish()
	return nil
}

// lockWaiters returns how many transactions are queued on the account's row lock.
func (m *memStore) lockWaiters(accountID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockWaits[accountID]
}

// --- users ---

func (m *memStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user " + userID)
	}
	return &u, nil
}

func (m *memStore) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user " + username)
}

func (m *memStore) SaveUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UserID] = user
	return nil
}

// --- accounts ---

func (m *memStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &a, nil
}

func (m *memStore) FindAccountByIBAN(_ context.Context, iban string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.IBAN == iban {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account " + iban)
}

func (m *memStore) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]domain.Account{}
	for _, id := range accountIDs {
		if a, ok := m.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (m *memStore) SaveAccountInTx(_ context.Context, tx pgx.Tx, account domain.Account) error {
	tx.(*memTx).stage(func() { m.accounts[account.AccountID] = account })
	return nil
}

func (m *memStore) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	l, ok := m.rowLocks[accountID]
	if !ok {
		l = &sync.Mutex{}
		m.rowLocks[accountID] = l
	}
	m.lockWaits[accountID]++
	m.mu.Unlock()

	l.Lock()

	m.mu.Lock()
	m.lockWaits[accountID]--
	m.mu.Unlock()

	t := tx.(*memTx)
	t.locked = append(t.locked, l)
	return m.FindAccountByID(ctx, accountID)
}

// --- access ---

func (m *memStore) FindAccess(_ context.Context, userID, accountID string) (*domain.AccountAccess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.access[accessKey{accountID, userID}]
	if !ok {
		return nil, apperrors.NewNotFoundError("grant")
	}
	return &g, nil
}

func (m *memStore) ListAccessByUser(_ context.Context, userID string, minimumTier domain.AccessTier) ([]domain.AccountAccess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AccountAccess
	for k, g := range m.access {
		if k.userID == userID && g.Tier >= minimumTier {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b domain.AccountAccess) int { return strings.Compare(a.AccountID, b.AccountID) })
	return out, nil
}

func (m *memStore) ListAccessByAccount(_ context.Context, accountID string) ([]domain.AccountAccess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AccountAccess
	for k, g := range m.access {
		if k.accountID == accountID {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b domain.AccountAccess) int { return strings.Compare(a.UserID, b.UserID) })
	return out, nil
}

func (m *memStore) ListAccessByAccountInTx(ctx context.Context, _ pgx.Tx, accountID string) ([]domain.AccountAccess, error) {
	grants, err := m.ListAccessByAccount(ctx, accountID)
	m.mu.Lock()
	hook := m.afterAccessList
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return grants, err
}

func (m *memStore) DeleteAccessInTx(_ context.Context, tx pgx.Tx, accountID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := accessKey{accountID, userID}
	if _, ok := m.access[k]; !ok {
		return apperrors.NewNotFoundError("grant")
	}
	tx.(*memTx).stage(func() { delete(m.access, k) })
	return nil
}

func (m *memStore) UpsertAccessInTx(_ context.Context, tx pgx.Tx, grant domain.AccountAccess) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpsertInTx != nil {
		return m.failUpsertInTx
	}
	tx.(*memTx).stage(func() { m.access[accessKey{grant.AccountID, grant.UserID}] = grant })
	return nil
}

// --- transactions ---

func (m *memStore) withIBAN(t domain.Transaction) domain.Transaction {
	if a, ok := m.accounts[t.AccountID]; ok {
		t.AccountIBAN = a.IBAN
	}
	return t
}

func (m *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.txns {
		if t.TransactionID == transactionID {
			t = m.withIBAN(t)
			return &t, nil
		}
	}
	return nil, apperrors.NewNotFoundError("transaction " + transactionID)
}

func (m *memStore) ListTransactionsByIBAN(_ context.Context, iban string) ([]domain.Transaction, error) {
	out, err := m.transactionsByIBAN(iban)
	m.mu.Lock()
	hook := m.afterIBANRead
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, err
}

func (m *memStore) transactionsByIBAN(iban string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ibanReads++
	if m.failListByIBAN != nil {
		return nil, m.failListByIBAN
	}
	var out []domain.Transaction
	for _, t := range m.txns {
		if t.PayeeIBAN == iban || t.PayerIBAN == iban {
			out = append(out, m.withIBAN(t))
		}
	}
	return out, nil
}

func (m *memStore) ListTransactionsByIBANInTx(_ context.Context, _ pgx.Tx, iban string) ([]domain.Transaction, error) {
	return m.transactionsByIBAN(iban)
}

func (m *memStore) sorted(keep func(domain.Transaction) bool) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range m.txns {
		if keep(t) {
			out = append(out, m.withIBAN(t))
		}
	}
	slices.SortFunc(out, domain.SortNewestFirst)
	return out
}

func (m *memStore) ListTransactionsByAccountID(_ context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(func(t domain.Transaction) bool { return t.AccountID == accountID && filter.Matches(t) })
	if offset >= len(all) {
		return []domain.Transaction{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (m *memStore) ListRecentTransactions(_ context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(func(t domain.Transaction) bool { return slices.Contains(accountIDs, t.AccountID) })
	return all[:min(limit, len(all))], nil
}

func (m *memStore) SumFlowsByIBANs(_ context.Context, ibans []string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	income, expenses := decimal.Zero, decimal.Zero
	for _, t := range m.txns {
		if t.BookingDate.Before(from) || !t.BookingDate.Before(to) {
			continue
		}
		if slices.Contains(ibans, t.PayeeIBAN) {
			income = income.Add(t.Amount)
		}
		if slices.Contains(ibans, t.PayerIBAN) {
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses, nil
}

func (m *memStore) ListCounterpartyNames(_ context.Context, accountIDs []string, term string, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var names []string
	for _, t := range m.sorted(func(t domain.Transaction) bool { return slices.Contains(accountIDs, t.AccountID) }) {
		name := t.PayeeName
		if t.IsCredit() {
			name = t.PayerName
		}
		if !seen[name] && strings.Contains(strings.ToLower(name), strings.ToLower(term)) {
			seen[name] = true
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names[:min(limit, len(names))], nil
}

func (m *memStore) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	txn.Seq = m.seq
	m.txns = append(m.txns, txn)
	return nil
}

func (m *memStore) SaveTransactionInTx(_ context.Context, tx pgx.Tx, txn domain.Transaction) error {
	tx.(*memTx).stage(func() {
		m.seq++
		txn.Seq = m.seq
		m.txns = append(m.txns, txn)
	})
	return nil
}

// --- money events ---

func (m *memStore) FindMoneyEventByID(_ context.Context, id string) (*domain.MoneyEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("money event " + id)
	}
	return &e, nil
}

func (m *memStore) FindReceiptByID(_ context.Context, id string) (*domain.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.receipts[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("receipt " + id)
	}
	return &r, nil
}

func (m *memStore) ListMoneyEventsByTransaction(_ context.Context, transactionID string) ([]domain.MoneyEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MoneyEvent
	for k := range m.links {
		if k.transactionID == transactionID {
			out = append(out, m.events[k.eventID])
		}
	}
	slices.SortFunc(out, func(a, b domain.MoneyEvent) int { return strings.Compare(a.MoneyEventID, b.MoneyEventID) })
	return out, nil
}

func (m *memStore) SaveMoneyEvent(_ context.Context, event domain.MoneyEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.MoneyEventID] = event
	return nil
}

func (m *memStore) SaveReceipt(_ context.Context, receipt domain.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[receipt.ReceiptID] = receipt
	return nil
}

func (m *memStore) SetMoneyEventReceipt(_ context.Context, eventID, receiptID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.events[eventID]
	e.ReceiptID = &receiptID
	m.events[eventID] = e
	return nil
}

func (m *memStore) LinkTransaction(_ context.Context, eventID, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[linkKey{eventID, transactionID}] = true
	return nil
}

func (m *memStore) UnlinkTransaction(_ context.Context, eventID, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := linkKey{eventID, transactionID}
	if !m.links[k] {
		return apperrors.NewNotFoundError("link")
	}
	delete(m.links, k)
	return nil
}
