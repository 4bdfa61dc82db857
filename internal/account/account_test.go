package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/ledgerstream/internal/money"
)

func mv(s string) money.Value {
	v, err := money.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDepositWithdraw(t *testing.T) {
	var a Account
	a, err := a.Deposit(mv("10"))
	require.NoError(t, err)
	assert.Zero(t, a.Available.Cmp(mv("10")))

	a, err = a.Withdraw(mv("3"))
	require.NoError(t, err)
	assert.Zero(t, a.Available.Cmp(mv("7")))
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	var a Account
	a, err := a.Deposit(mv("1"))
	require.NoError(t, err)

	_, err = a.Withdraw(mv("2"))
	assert.ErrorIs(t, err, ErrNotEnoughFunds)
}

func TestFreezeFundsAllowsNegativeAvailable(t *testing.T) {
	var a Account
	a, _ = a.Deposit(mv("5"))
	a, _ = a.Withdraw(mv("3"))

	a, err := a.FreezeFunds(mv("5"))
	require.NoError(t, err)
	assert.Zero(t, a.Available.Cmp(mv("-3")))
	assert.Zero(t, a.Held.Cmp(mv("5")))
}

func TestReleaseFunds(t *testing.T) {
	var a Account
	a, _ = a.Deposit(mv("10"))
	a, _ = a.FreezeFunds(mv("1"))

	a, err := a.ReleaseFunds(mv("1"))
	require.NoError(t, err)
	assert.Zero(t, a.Available.Cmp(mv("10")))
	assert.Zero(t, a.Held.Cmp(money.Zero))
}

func TestReleaseFundsInsufficientHeld(t *testing.T) {
	var a Account
	_, err := a.ReleaseFunds(mv("1"))
	assert.ErrorIs(t, err, ErrNotEnoughFunds)
}

func TestChargebackFreezesAndDebits(t *testing.T) {
	var a Account
	a, _ = a.Deposit(mv("10"))
	a, _ = a.FreezeFunds(mv("1"))

	a, err := a.Chargeback(mv("1"))
	require.NoError(t, err)
	a = a.Freeze()

	assert.Zero(t, a.Available.Cmp(mv("9")))
	assert.Zero(t, a.Held.Cmp(money.Zero))
	assert.True(t, a.Locked())
}

func TestChargebackInsufficientHeld(t *testing.T) {
	var a Account
	_, err := a.Chargeback(mv("1"))
	assert.ErrorIs(t, err, ErrNotEnoughFunds)
}

func TestFrozenRefusesEverything(t *testing.T) {
	var a Account
	a, _ = a.Deposit(mv("1"))
	a = a.Freeze()

	_, err := a.Deposit(mv("1"))
	assert.ErrorIs(t, err, ErrFrozen)

	_, err = a.Withdraw(mv("1"))
	assert.ErrorIs(t, err, ErrFrozen)

	_, err = a.FreezeFunds(mv("1"))
	assert.ErrorIs(t, err, ErrFrozen)

	_, err = a.ReleaseFunds(mv("1"))
	assert.ErrorIs(t, err, ErrFrozen)

	_, err = a.Chargeback(mv("1"))
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestTotalAndLocked(t *testing.T) {
	var a Account
	a, _ = a.Deposit(mv("4"))
	a, _ = a.FreezeFunds(mv("1"))

	assert.Zero(t, a.Total().Cmp(mv("4")))
	assert.False(t, a.Locked())
}
