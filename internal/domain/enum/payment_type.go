package enum

import "database/sql/driver"

// PaymentType is the ledger tag on a payment row: credit for money
// coming in (customer receipts), debit for money going out (supplier
// disbursements).
type PaymentType string

const (
	PaymentTypeCredit PaymentType = "credit"
	PaymentTypeDebit  PaymentType = "debit"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeCredit
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PaymentType(v)
	case []byte:
		*t = PaymentType(string(v))
	}
	return nil
}
