package auth

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleViewer  Role = "viewer"
)

// AllRoles lists every role in descending privilege.
var AllRoles = []Role{RoleAdmin, RoleAnalyst, RoleViewer}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

// User is a provisioned account. Exactly one of Password (file store) and
// PasswordHash (database store) is set.
type User struct {
	ID           *int64 `json:"id,omitempty"`
	Username     string `json:"username"`
	Password     string `json:"-"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// Identity is the result of a successful authentication.
type Identity struct {
	ID       *int64 `json:"id,omitempty"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
