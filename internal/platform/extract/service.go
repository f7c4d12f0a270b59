package extract

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/classify"
	"github.com/carteira-app/carteira/internal/refresh"
	"github.com/carteira-app/carteira/pkg/logger"
	"github.com/carteira-app/carteira/pkg/money"
)

// View is the fully assembled extract screen: the account balance and
// the classified, day-grouped statement, both taken from the same
// refresh cycle.
type View struct {
	Balance    decimal.Decimal `json:"balance"`
	BalanceBRL string          `json:"balance_brl"`
	Statement  Statement       `json:"statement"`
}

// Service assembles the extract screen. Balance and statement come
// from separate backend endpoints, so each refresh runs under a
// ticket and a pairing superseded mid-flight is discarded. Guards are
// keyed per account: one account's refresh must never invalidate
// another's.
type Service struct {
	gateway Gateway
	logger  *logger.Logger

	mu     sync.Mutex
	guards map[string]*refresh.Guard // per account ID
}

// NewService creates a new extract service
func NewService(gateway Gateway, log *logger.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  log.WithField("component", "extract"),
		guards:  make(map[string]*refresh.Guard),
	}
}

func (s *Service) guard(accountID string) *refresh.Guard {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[accountID]
	if !ok {
		g = &refresh.Guard{}
		s.guards[accountID] = g
	}
	return g
}

// Refresh fetches the account balance and statement, classifies every
// entry and groups them by calendar day. filterCode narrows the
// statement to a single transaction code; empty means no filter.
func (s *Service) Refresh(ctx context.Context, token, accountID, filterCode string) (View, error) {
	if filterCode != "" && !classify.Classify(filterCode).Known {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownFilter, filterCode)
	}

	ticket := s.guard(accountID).Begin()

	balance, err := s.gateway.AccountBalance(ctx, token, accountID)
	if err != nil {
		return View{}, fmt.Errorf("failed to fetch account balance: %w", err)
	}

	rows, err := s.gateway.Statement(ctx, token, accountID)
	if err != nil {
		return View{}, fmt.Errorf("failed to fetch statement: %w", err)
	}

	if !s.guard(accountID).Still(ticket) {
		s.logger.Debug("stale statement refresh discarded", "account_id", accountID)
		return View{}, ErrStaleRefresh
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		c := classify.Classify(row.Type)
		if !c.Known {
			s.logger.Warn("unknown transaction code in statement",
				"account_id", accountID,
				"entry_id", row.ID,
				"code", row.Type)
		}
		if filterCode != "" && c.Code != filterCode {
			continue
		}
		entries = append(entries, newEntry(row.ID, row.Date, row.Amount, c))
	}

	return View{
		Balance:    balance,
		BalanceBRL: money.FormatBRL(balance),
		Statement:  Statement{Days: groupByDay(entries)},
	}, nil
}
