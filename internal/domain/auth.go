package domain

// Role is the discriminator embedded in tokens distinguishing which
// gates a caller satisfies.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the decoded, verified principal attached to a request
// after token verification succeeds.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

// IsAdmin reports whether the identity passes the admin gate.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
