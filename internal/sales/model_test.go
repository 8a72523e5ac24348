package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTransactionDerivesTotalFromRoundedPrice(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	txn, err := NewTransaction(
		"TXN000001", date,
		"CUST0001", "Apex Labs Inc", "Enterprise",
		"PROD001", "Laptop Pro", "Electronics",
		3, 99.999,
		"North America", "Alice Johnson", "Online",
	)
	require.NoError(t, err)

	require.Equal(t, 100.0, txn.UnitPrice)
	require.Equal(t, Round2(float64(txn.Quantity)*txn.UnitPrice), txn.TotalAmount)
	require.Equal(t, 300.0, txn.TotalAmount)
	require.NotEmpty(t, txn.ID)
	require.Equal(t, "TXN000001", txn.TransactionID)
}

func TestNewTransactionRejectsBadInputs(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	_, err := NewTransaction("TXN000001", date, "c", "n", "SMB", "p", "pn", "cat", 0, 10, "r", "rep", "ch")
	require.Error(t, err)

	_, err = NewTransaction("TXN000001", date, "c", "n", "SMB", "p", "pn", "cat", 1, -0.01, "r", "rep", "ch")
	require.Error(t, err)
}

func TestDateKeys(t *testing.T) {
	date := time.Date(2024, 11, 30, 23, 59, 0, 0, time.UTC)
	txn, err := NewTransaction("TXN000002", date, "c", "n", "SMB", "p", "pn", "cat", 1, 10, "r", "rep", "ch")
	require.NoError(t, err)

	require.Equal(t, "2024-11-30", txn.DateKey())
	require.Equal(t, "2024-11", txn.MonthKey())
}

func TestRound2(t *testing.T) {
	require.Equal(t, 1.23, Round2(1.234))
	require.Equal(t, 1.24, Round2(1.236))
	require.Equal(t, 0.0, Round2(0))
	require.Equal(t, -1.23, Round2(-1.231))
}
