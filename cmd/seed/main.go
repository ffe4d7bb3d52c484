// Command seed fills an empty database with demo users, accounts, grants and
// transactions, then prints a signed token for the demo user.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/mybanking_app/internal/apperrors"
	"github.com/SscSPs/mybanking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/core/services"
	"github.com/SscSPs/mybanking_app/internal/dto"
	"github.com/SscSPs/mybanking_app/internal/platform/config"
	"github.com/SscSPs/mybanking_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/mybanking_app/internal/utils"
	"github.com/SscSPs/mybanking_app/pkg/database"
	"github.com/shopspring/decimal"
)

var demoAccounts = []struct {
	iban, bank, holder string
	accountType        domain.AccountType
	currency           domain.Currency
}{
	{"DE89370400440532013000", "Commerzbank", "Felix Demo", domain.AccountTypeChecking, domain.CurrencyEUR},
	{"DE44500105175407324931", "ING", "Felix Demo", domain.AccountTypeSavings, domain.CurrencyEUR},
	{"GB82WEST12345698765432", "Westminster", "Owner Demo", domain.AccountTypeChecking, domain.CurrencyGBP},
	{"NL91ABNA0417164300", "ABN AMRO", "Owner Demo", domain.AccountTypeCallMoney, domain.CurrencyEUR},
	{"CH9300762011623852957", "PostFinance", "Owner Demo", domain.AccountTypeFixedDeposit, domain.CurrencyCHF},
	{"AT611904300234573201", "Bank Austria", "Owner Demo", domain.AccountTypeCreditCard, domain.CurrencyEUR},
}

// Counterparties booked against every seeded account.
var demoBookings = []struct {
	direction  domain.Direction
	amount     string
	name, iban string
	purpose    string
	category   string
	daysAgo    int
}{
	{domain.Credit, "2450.00", "Arbeitgeber GmbH", "ES9121000418450200051332", "Gehalt", "Einkommen", 20},
	{domain.Debit, "950.00", "Hausverwaltung", "BE68539007547034", "Miete", "Wohnen", 18},
	{domain.Debit, "84.37", "Supermarkt", "IT60X0542811101000000123456", "Lebensmittel", "Haushalt", 9},
	{domain.Debit, "42.90", "Stadtwerke", "FR1420041010050500013M02606", "Strom", "Wohnen", 3},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	demoUser := flag.String("user", "felix", "username of the demo user")
	password := flag.String("password", "demo-password", "password for the seeded users")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(pool)

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	repos := pgsql.NewRepositoryProvider(pool)
	svcs := services.NewServiceContainer(cfg, repos, nil)

	token, err := seed(ctx, logger, repos, svcs, cfg, *demoUser, *password)
	if err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}

func seed(ctx context.Context, logger *slog.Logger, repos portsrepo.RepositoryProvider, svcs *portssvc.ServiceContainer, cfg *config.Config, demoName, password string) (string, error) {
	demo, err := ensureUser(ctx, repos, svcs, demoName, password)
	if err != nil {
		return "", err
	}
	owner, err := ensureUser(ctx, repos, svcs, demoName+"-owner", password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	for i, a := range demoAccounts {
		account, created, err := ensureAccount(ctx, repos, svcs, owner.UserID, a.iban, a.bank, a.holder, a.accountType, a.currency)
		if err != nil {
			return "", err
		}
		logger := logger.With(slog.String("iban", account.IBAN))

		// Every tier from None to Admin is represented once.
		tier := domain.AccessTier(i % int(domain.TierAdmin+1))
		if _, err := svcs.Access.GrantOrUpdateAccess(ctx, owner.UserID, account.AccountID, demo.UserID, tier); err != nil {
			return "", fmt.Errorf("grant %s on %s: %w", tier, account.IBAN, err)
		}
		logger.Info("Granted demo access", slog.String("tier", tier.String()))

		if !created {
			continue
		}
		for _, b := range demoBookings {
			booked := now.AddDate(0, 0, -b.daysAgo)
			_, err := svcs.Ledger.RecordTransaction(ctx, owner.UserID, account.AccountID, dto.RecordTransactionRequest{
				Amount:           decimal.RequireFromString(b.amount),
				Direction:        b.direction,
				CounterpartyName: b.name,
				CounterpartyIBAN: b.iban,
				Purpose:          b.purpose,
				Category:         b.category,
				BookingDate:      &booked,
			})
			if err != nil {
				return "", fmt.Errorf("record %s on %s: %w", b.purpose, account.IBAN, err)
			}
		}
		logger.Info("Seeded transactions", slog.Int("count", len(demoBookings)))
	}

	return utils.GenerateJWT(demo.UserID, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
}

// ensureUser registers username or returns the existing user.
func ensureUser(ctx context.Context, repos portsrepo.RepositoryProvider, svcs *portssvc.ServiceContainer, username, password string) (*domain.User, error) {
	user, err := svcs.User.CreateUser(ctx, dto.CreateUserRequest{Username: username, Password: password})
	if errors.Is(err, apperrors.ErrConflict) {
		return repos.UserRepo.FindUserByUsername(ctx, username)
	}
	return user, err
}

// ensureAccount opens the account or returns the existing one; created reports which.
func ensureAccount(ctx context.Context, repos portsrepo.RepositoryProvider, svcs *portssvc.ServiceContainer, ownerID, iban, bank, holder string, accountType domain.AccountType, currency domain.Currency) (*domain.Account, bool, error) {
	account, err := svcs.Account.CreateAccount(ctx, ownerID, dto.CreateAccountRequest{
		IBAN:        iban,
		BIC:         "GENODEF1XXX",
		BankName:    bank,
		AccountType: accountType,
		Currency:    currency,
		HolderName:  holder,
	})
	if errors.Is(err, apperrors.ErrConflict) {
		existing, err := repos.AccountRepo.FindAccountByIBAN(ctx, iban)
		return existing, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return account, true, nil
}
