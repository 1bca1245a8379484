package enum

import (
	"database/sql/driver"
	"fmt"
)

// CounterpartyType distinguishes customers (they owe us for sales)
// from suppliers (we owe them for purchases).
type CounterpartyType string

const (
	CounterpartyTypeCustomer CounterpartyType = "customer"
	CounterpartyTypeSupplier CounterpartyType = "supplier"
)

// ParseCounterpartyType validates a raw counterparty type value
func ParseCounterpartyType(raw string) (CounterpartyType, error) {
	switch CounterpartyType(raw) {
	case CounterpartyTypeCustomer, CounterpartyTypeSupplier:
		return CounterpartyType(raw), nil
	}
	return "", fmt.Errorf("invalid counterparty type %q", raw)
}

func (t CounterpartyType) String() string {
	return string(t)
}

// Direction returns the trade direction this counterparty settles:
// customers pay off sales, suppliers are paid off purchases.
func (t CounterpartyType) Direction() Direction {
	if t == CounterpartyTypeSupplier {
		return DirectionPurchase
	}
	return DirectionSale
}

func (t CounterpartyType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CounterpartyType) Scan(value interface{}) error {
	if value == nil {
		*t = CounterpartyTypeCustomer
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CounterpartyType(v)
	case []byte:
		*t = CounterpartyType(string(v))
	}
	return nil
}
