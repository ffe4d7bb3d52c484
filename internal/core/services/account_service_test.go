package services_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	bankSuite
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_MakesCreatorAdmin() {
	account, err := s.svcs.Account.CreateAccount(s.ctx, s.bob, dto.CreateAccountRequest{
		IBAN:       "gb82 west 1234 5698 7654 32",
		BIC:        "westgb2l",
		HolderName: " Bob Example ",
	})
	s.Require().NoError(err)

	s.NotEmpty(account.AccountID)
	s.Equal(ibanBob, account.IBAN)
	s.Equal("WESTGB2L", account.BIC)
	s.Equal("Bob Example", account.HolderName)
	s.Equal(domain.AccountTypeChecking, account.AccountType)
	s.Equal(domain.CurrencyEUR, account.Currency)
	s.Equal(s.bob, account.CreatedBy)

	tier, err := s.svcs.Access.ResolveAccessLevel(s.ctx, s.bob, account.AccountID)
	s.Require().NoError(err)
	s.Equal(domain.TierAdmin, tier)
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateIBAN() {
	_, err := s.svcs.Account.CreateAccount(s.ctx, s.bob, accountRequest("DE89 3704 0044 0532 0130 00", "Someone Else"))
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Validation() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
	}{
		{"bad checksum", accountRequest("DE89370400440532013001", "Bob")},
		{"blank holder", accountRequest(ibanBob, "  ")},
		{"unknown type", dto.CreateAccountRequest{IBAN: ibanBob, HolderName: "Bob", AccountType: "BROKERAGE"}},
		{"unknown currency", dto.CreateAccountRequest{IBAN: ibanBob, HolderName: "Bob", Currency: "XYZ"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svcs.Account.CreateAccount(s.ctx, s.bob, tt.req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *AccountServiceTestSuite) TestCreateAccount_RollsBackWhenGrantFails() {
	s.store.failUpsertInTx = apperrors.NewStorageError("insert grant", errors.New("connection reset"))

	_, err := s.svcs.Account.CreateAccount(s.ctx, s.bob, accountRequest(ibanBob, "Bob Example"))
	s.ErrorIs(err, apperrors.ErrStorage)

	_, err = s.store.FindAccountByIBAN(s.ctx, ibanBob)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestGetAccount_IncludesBalance() {
	s.record(s.aliceAccount.AccountID, domain.Credit, "99.99", ibanBob)

	account, err := s.svcs.Account.GetAccount(s.ctx, s.alice, s.aliceAccount.AccountID)
	s.Require().NoError(err)
	s.True(account.Balance.Equal(dec("99.99")), "got %s", account.Balance)

	_, err = s.svcs.Account.GetAccount(s.ctx, s.carol, s.aliceAccount.AccountID)
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.svcs.Account.GetAccount(s.ctx, s.alice, "no-such-account")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestListAccountsForUser_OrderedByIBAN() {
	bobAccount := s.openAccount(s.bob, ibanBob, "Bob Example")
	s.grant(s.aliceAccount.AccountID, s.bob, domain.TierView)
	s.record(s.aliceAccount.AccountID, domain.Debit, "15", ibanBob)

	accounts, err := s.svcs.Account.ListAccountsForUser(s.ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal(s.aliceAccount.AccountID, accounts[0].AccountID)
	s.Equal(bobAccount.AccountID, accounts[1].AccountID)
	s.True(accounts[0].Balance.Equal(dec("-15")))
	s.True(accounts[1].Balance.Equal(dec("15")))

	none, err := s.svcs.Account.ListAccountsForUser(s.ctx, s.carol)
	s.Require().NoError(err)
	s.Empty(none)
}
