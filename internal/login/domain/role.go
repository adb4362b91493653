package domain

import "fmt"

// Role is the single authority granted to a user. The bookshop only knows two
// roles; anything else in storage is treated as corrupt data.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole validates a stored role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer:
		return Role(s), nil
	}
	return "", fmt.Errorf("domain: unknown role %q", s)
}
