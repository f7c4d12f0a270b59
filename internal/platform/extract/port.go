package extract

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
)

// Gateway is the slice of the banking API the extract screen needs.
type Gateway interface {
	AccountBalance(ctx context.Context, token, accountID string) (decimal.Decimal, error)
	Statement(ctx context.Context, token, accountID string) ([]bankapi.StatementEntry, error)
}
