package enum

import (
	"database/sql/driver"
	"fmt"
)

// Unit is the measure an invoice line is traded in. Produce moves in
// cartons, trays or loose kilograms depending on the product.
type Unit string

const (
	UnitCarton Unit = "carton"
	UnitTray   Unit = "tray"
	UnitKg     Unit = "kg"
)

// ParseUnit validates a raw unit value
func ParseUnit(raw string) (Unit, error) {
	switch Unit(raw) {
	case UnitCarton, UnitTray, UnitKg:
		return Unit(raw), nil
	}
	return "", fmt.Errorf("invalid unit %q", raw)
}

func (u Unit) String() string {
	return string(u)
}

func (u Unit) Value() (driver.Value, error) {
	return string(u), nil
}

func (u *Unit) Scan(value interface{}) error {
	if value == nil {
		*u = UnitKg
		return nil
	}
	switch v := value.(type) {
	case string:
		*u = Unit(v)
	case []byte:
		*u = Unit(string(v))
	}
	return nil
}
