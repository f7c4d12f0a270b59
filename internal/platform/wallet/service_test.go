package wallet_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/ledger"
	"github.com/carteira-app/carteira/internal/platform/wallet"
	"github.com/carteira-app/carteira/pkg/logger"
	"github.com/carteira-app/carteira/pkg/money"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListWallets(ctx context.Context, token string) ([]bankapi.Wallet, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bankapi.Wallet), args.Error(1)
}

func (m *MockGateway) GetWallet(ctx context.Context, token, walletID string) (bankapi.Wallet, error) {
	args := m.Called(ctx, token, walletID)
	return args.Get(0).(bankapi.Wallet), args.Error(1)
}

func (m *MockGateway) CreateWallet(ctx context.Context, token string, req bankapi.CreateWalletRequest) (bankapi.Wallet, error) {
	args := m.Called(ctx, token, req)
	return args.Get(0).(bankapi.Wallet), args.Error(1)
}

func (m *MockGateway) UpdateWallet(ctx context.Context, token, walletID string, req bankapi.UpdateWalletRequest) (bankapi.Wallet, error) {
	args := m.Called(ctx, token, walletID, req)
	return args.Get(0).(bankapi.Wallet), args.Error(1)
}

func (m *MockGateway) DeleteWallet(ctx context.Context, token, walletID string) error {
	args := m.Called(ctx, token, walletID)
	return args.Error(0)
}

func (m *MockGateway) WalletTransactions(ctx context.Context, token, walletID string) ([]ledger.WalletTransaction, error) {
	args := m.Called(ctx, token, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.WalletTransaction), args.Error(1)
}

func (m *MockGateway) WalletDeposit(ctx context.Context, token, walletID string, amount decimal.Decimal) (bankapi.Wallet, error) {
	args := m.Called(ctx, token, walletID, amount)
	return args.Get(0).(bankapi.Wallet), args.Error(1)
}

func (m *MockGateway) WalletWithdraw(ctx context.Context, token, walletID string, amount decimal.Decimal) (bankapi.Wallet, error) {
	args := m.Called(ctx, token, walletID, amount)
	return args.Get(0).(bankapi.Wallet), args.Error(1)
}

type MockIcons struct {
	mock.Mock
}

func (m *MockIcons) WalletIcon(ctx context.Context, accountID, walletID string) (string, error) {
	args := m.Called(ctx, accountID, walletID)
	return args.String(0), args.Error(1)
}

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testWallet(balance, goal string) bankapi.Wallet {
	return bankapi.Wallet{
		ID:      "w-1",
		Name:    "Viagem",
		Balance: d(balance),
		Goal:    d(goal),
		State:   bankapi.WalletActive,
	}
}

func TestDetail_DerivesOpeningBalance(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("150.00", "1000.00"), nil)
	gateway.On("WalletTransactions", ctx, "tok", "w-1").Return([]ledger.WalletTransaction{
		{Kind: ledger.KindDeposit, Amount: d("50.00"), OccurredAt: time.Now()},
		{Kind: ledger.KindWithdrawal, Amount: d("20.00"), OccurredAt: time.Now()},
	}, nil)

	icons := new(MockIcons)
	icons.On("WalletIcon", ctx, "acc-1", "w-1").Return("travel", nil)

	svc := wallet.NewService(gateway, icons, testLogger())
	detail, err := svc.Detail(ctx, "tok", "acc-1", "w-1")
	require.NoError(t, err)

	assert.Equal(t, "120.00", detail.OpeningBalance.StringFixed(2))
	assert.Equal(t, "travel", detail.Icon)
	assert.Equal(t, "0.15", detail.GoalProgress.StringFixed(2))
	assert.Len(t, detail.Transactions, 2)
}

func TestDetail_EmptyHistoryOpeningEqualsBalance(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("0.00", "0.00"), nil)
	gateway.On("WalletTransactions", ctx, "tok", "w-1").Return([]ledger.WalletTransaction{}, nil)

	icons := new(MockIcons)
	icons.On("WalletIcon", ctx, "acc-1", "w-1").Return("wallet", nil)

	svc := wallet.NewService(gateway, icons, testLogger())
	detail, err := svc.Detail(ctx, "tok", "acc-1", "w-1")
	require.NoError(t, err)
	assert.True(t, detail.OpeningBalance.Equal(detail.Wallet.Balance))
	assert.True(t, detail.GoalProgress.IsZero())
}

func TestDetail_IconFailureDoesNotFailScreen(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("10.00", "0.00"), nil)
	gateway.On("WalletTransactions", ctx, "tok", "w-1").Return([]ledger.WalletTransaction{}, nil)

	icons := new(MockIcons)
	icons.On("WalletIcon", ctx, "acc-1", "w-1").Return("", assert.AnError)

	svc := wallet.NewService(gateway, icons, testLogger())
	detail, err := svc.Detail(ctx, "tok", "acc-1", "w-1")
	require.NoError(t, err)
	assert.Empty(t, detail.Icon)
}

func TestDetail_FailsClosedOnBadHistory(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("10.00", "0.00"), nil)
	gateway.On("WalletTransactions", ctx, "tok", "w-1").Return([]ledger.WalletTransaction{
		{Kind: ledger.KindDeposit, Amount: d("-5.00")},
	}, nil)

	icons := new(MockIcons)
	svc := wallet.NewService(gateway, icons, testLogger())

	_, err := svc.Detail(ctx, "tok", "acc-1", "w-1")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	icons.AssertNotCalled(t, "WalletIcon")
}

func TestDetail_StalePairingDiscarded(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	icons := new(MockIcons)
	svc := wallet.NewService(gateway, icons, testLogger())

	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("10.00", "0.00"), nil)
	icons.On("WalletIcon", ctx, "acc-1", "w-1").Return("wallet", nil)

	// While the first refresh is between its two fetches, a full
	// second refresh runs to completion. The first pairing is now
	// stale and must be dropped, not reconciled.
	nested := false
	var nestedErr error
	gateway.On("WalletTransactions", ctx, "tok", "w-1").Run(func(mock.Arguments) {
		if !nested {
			nested = true
			_, nestedErr = svc.Detail(ctx, "tok", "acc-1", "w-1")
		}
	}).Return([]ledger.WalletTransaction{}, nil)

	_, err := svc.Detail(ctx, "tok", "acc-1", "w-1")
	assert.ErrorIs(t, err, wallet.ErrStaleRefresh)
	require.NoError(t, nestedErr)
	icons.AssertNumberOfCalls(t, "WalletIcon", 1)
}

func TestCreate_Validation(t *testing.T) {
	svc := wallet.NewService(new(MockGateway), new(MockIcons), testLogger())
	ctx := context.Background()

	tests := []struct {
		name    string
		wName   string
		goal    string
		deposit string
		wantErr error
	}{
		{"missing name", "", "0", "0", wallet.ErrMissingWalletName},
		{"name too long", string(make([]byte, 101)), "0", "0", wallet.ErrWalletNameTooLong},
		{"negative goal", "Viagem", "-1", "0", wallet.ErrNegativeGoal},
		{"negative deposit", "Viagem", "0", "-10", money.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "tok", tt.wName, d(tt.goal), d(tt.deposit))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_CallsGateway(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("CreateWallet", ctx, "tok", bankapi.CreateWalletRequest{
		Name:           "Viagem",
		Goal:           d("1000.00"),
		InitialDeposit: d("50.00"),
	}).Return(testWallet("50.00", "1000.00"), nil)

	svc := wallet.NewService(gateway, new(MockIcons), testLogger())
	w, err := svc.Create(ctx, "tok", "Viagem", d("1000.00"), d("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "Viagem", w.Name)
	gateway.AssertExpectations(t)
}

func TestDeposit_RejectsZeroAndNegative(t *testing.T) {
	svc := wallet.NewService(new(MockGateway), new(MockIcons), testLogger())
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "tok", "w-1", d("0"))
	assert.ErrorIs(t, err, wallet.ErrNonPositiveAmount)

	_, err = svc.Deposit(ctx, "tok", "w-1", d("-10.00"))
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestDeposit_ReturnsBackendBalance(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("100.00", "0.00"), nil)
	after := testWallet("150.00", "0.00")
	gateway.On("WalletDeposit", ctx, "tok", "w-1", d("50.00")).Return(after, nil)

	svc := wallet.NewService(gateway, new(MockIcons), testLogger())
	w, err := svc.Deposit(ctx, "tok", "w-1", d("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "150.00", w.Balance.StringFixed(2))
	gateway.AssertExpectations(t)
}

func TestWithdraw_ReturnsBackendBalance(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("GetWallet", ctx, "tok", "w-1").Return(testWallet("100.00", "0.00"), nil)
	// Backend reports a different balance than the local projection
	// (another movement raced); the backend value wins.
	after := testWallet("75.50", "0.00")
	gateway.On("WalletWithdraw", ctx, "tok", "w-1", d("20.00")).Return(after, nil)

	svc := wallet.NewService(gateway, new(MockIcons), testLogger())
	w, err := svc.Withdraw(ctx, "tok", "w-1", d("20.00"))
	require.NoError(t, err)
	assert.Equal(t, "75.50", w.Balance.StringFixed(2))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("ListWallets", ctx, "tok").Return([]bankapi.Wallet{
		testWallet("10.00", "0.00"),
		{ID: "w-2", Name: "Reserva", Balance: d("500.00"), Goal: d("0"), State: bankapi.WalletActive},
	}, nil)

	svc := wallet.NewService(gateway, new(MockIcons), testLogger())
	wallets, err := svc.List(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "Reserva", wallets[1].Name)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockGateway)
	gateway.On("DeleteWallet", ctx, "tok", "w-1").Return(nil)

	svc := wallet.NewService(gateway, new(MockIcons), testLogger())
	require.NoError(t, svc.Delete(ctx, "tok", "w-1"))
	gateway.AssertExpectations(t)
}
