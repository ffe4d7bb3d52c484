package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceCache stores derived balances keyed by IBAN. Implementations must be
// safe for concurrent use; a miss is reported as ok == false with a nil error.
//
// Every Invalidate bumps a per-IBAN generation. A fill reads the generation
// before loading transactions and hands it to StoreBalance, which refuses to
// write once the generation has moved on.
type BalanceCache interface {
	GetBalance(ctx context.Context, iban string) (balance decimal.Decimal, ok bool, err error)
	Generation(ctx context.Context, iban string) (int64, error)
	StoreBalance(ctx context.Context, iban string, generation int64, balance decimal.Decimal) (stored bool, err error)
	Invalidate(ctx context.Context, ibans ...string) error
}
