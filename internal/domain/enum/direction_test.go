package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	for _, raw := range []string{"sale", "purchase"} {
		d, err := ParseDirection(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, d.String())
	}

	for _, raw := range []string{"", "Sale", "credit", "refund"} {
		_, err := ParseDirection(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestDirectionPaymentType(t *testing.T) {
	assert.Equal(t, PaymentTypeCredit, DirectionSale.PaymentType())
	assert.Equal(t, PaymentTypeDebit, DirectionPurchase.PaymentType())
}

func TestCounterpartyTypeDirection(t *testing.T) {
	assert.Equal(t, DirectionSale, CounterpartyTypeCustomer.Direction())
	assert.Equal(t, DirectionPurchase, CounterpartyTypeSupplier.Direction())

	_, err := ParseCounterpartyType("vendor")
	assert.Error(t, err)
}

func TestDirectionScan(t *testing.T) {
	var d Direction
	require.NoError(t, d.Scan("purchase"))
	assert.Equal(t, DirectionPurchase, d)

	require.NoError(t, d.Scan([]byte("sale")))
	assert.Equal(t, DirectionSale, d)

	v, err := DirectionPurchase.Value()
	require.NoError(t, err)
	assert.Equal(t, "purchase", v)
}
