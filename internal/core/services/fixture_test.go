package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/core/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/SscSPs/mybanking_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	ibanAlice = "DE89370400440532013000"
	ibanBob   = "GB82WEST12345698765432"
	ibanShop  = "DE44500105175407324931"
	ibanRent  = "NL91ABNA0417164300"
)

// bankSuite wires the real services over memStore and seeds three users.
// Alice owns an account and is its only Admin.
type bankSuite struct {
	suite.Suite
	ctx   context.Context
	store *memStore
	cfg   *config.Config
	svcs  *portssvc.ServiceContainer

	alice, bob, carol string
	aliceAccount      *domain.Account
}

func (s *bankSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()
	if s.cfg == nil {
		s.cfg = &config.Config{DefaultPageSize: 20, MaxPageSize: 200}
	}
	s.svcs = services.NewServiceContainer(s.cfg, s.store.provider(), nil)

	s.alice = s.addUser("alice")
	s.bob = s.addUser("bob")
	s.carol = s.addUser("carol")
	s.aliceAccount = s.openAccount(s.alice, ibanAlice, "Alice Example")
}

func (s *bankSuite) addUser(name string) string {
	id := uuid.NewString()
	s.Require().NoError(s.store.SaveUser(s.ctx, domain.User{UserID: id, Username: name, CreatedAt: time.Now()}))
	return id
}

func (s *bankSuite) openAccount(owner, iban, holder string) *domain.Account {
	account, err := s.svcs.Account.CreateAccount(s.ctx, owner, accountRequest(iban, holder))
	s.Require().NoError(err)
	return account
}

func (s *bankSuite) grant(accountID, userID string, tier domain.AccessTier) {
	_, err := s.svcs.Access.GrantOrUpdateAccess(s.ctx, s.alice, accountID, userID, tier)
	s.Require().NoError(err)
}

func (s *bankSuite) record(accountID string, direction domain.Direction, amount, counterpartyIBAN string) *domain.Transaction {
	txn, err := s.svcs.Ledger.RecordTransaction(s.ctx, s.alice, accountID, dto.RecordTransactionRequest{
		Amount:           decimal.RequireFromString(amount),
		Direction:        direction,
		CounterpartyName: "Counterparty " + counterpartyIBAN[:2],
		CounterpartyIBAN: counterpartyIBAN,
	})
	s.Require().NoError(err)
	return txn
}

// book stores a transaction directly, bypassing the service, with a fixed booking date.
func (s *bankSuite) book(txn domain.Transaction) domain.Transaction {
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.AccountID == "" {
		txn.AccountID = s.aliceAccount.AccountID
	}
	if txn.Category == "" {
		txn.Category = domain.DefaultCategory
	}
	s.Require().NoError(s.store.SaveTransaction(s.ctx, txn))
	return txn
}

func accountRequest(iban, holder string) dto.CreateAccountRequest {
	return dto.CreateAccountRequest{IBAN: iban, HolderName: holder}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func day(d int) time.Time { return time.Date(2024, time.March, d, 9, 0, 0, 0, time.UTC) }
