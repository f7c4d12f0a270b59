package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carteira-app/carteira/internal/ledger"
)

func TestTxKind_IsValid(t *testing.T) {
	assert.True(t, ledger.KindDeposit.IsValid())
	assert.True(t, ledger.KindWithdrawal.IsValid())
	assert.False(t, ledger.TxKind("").IsValid())
	assert.False(t, ledger.TxKind("PIX_RECEBIDO").IsValid())
}
