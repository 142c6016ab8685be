package domain

// Role determines what an authenticated caller may do.
type Role string

const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
)

// User is the authenticated identity attached to a request. Accounts,
// sessions and the social graph live in the surrounding application;
// the ledger only needs to know who is calling.
type User struct {
	ID    string
	Email string
	Role  Role
}
