package enum

import "database/sql/driver"

// Role is the coarse access level of a user. Admins manage suppliers,
// branches, products and purchase-side payments; salesmen operate the
// sale side of their own branch.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSalesman Role = "salesman"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleSalesman
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	}
	return nil
}
