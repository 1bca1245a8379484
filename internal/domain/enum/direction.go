package enum

import (
	"database/sql/driver"
	"fmt"
)

// Direction tells which side of the trade an invoice sits on:
// a sale to a customer or a purchase from a supplier.
type Direction string

const (
	DirectionSale     Direction = "sale"
	DirectionPurchase Direction = "purchase"
)

// ParseDirection validates a raw direction value
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case DirectionSale, DirectionPurchase:
		return Direction(raw), nil
	}
	return "", fmt.Errorf("invalid direction %q", raw)
}

func (d Direction) String() string {
	return string(d)
}

// PaymentType maps a trade direction to the ledger tag of its payments:
// money received against sales is a credit, money paid out against
// purchases is a debit.
func (d Direction) PaymentType() PaymentType {
	if d == DirectionPurchase {
		return PaymentTypeDebit
	}
	return PaymentTypeCredit
}

func (d Direction) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *Direction) Scan(value interface{}) error {
	if value == nil {
		*d = DirectionSale
		return nil
	}
	switch v := value.(type) {
	case string:
		*d = Direction(v)
	case []byte:
		*d = Direction(string(v))
	}
	return nil
}
