package access

type Role string

const (
	RoleGuest  Role = "guest"
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

var roleRank = map[Role]int{
	RoleGuest:  0,
	RoleUser:   1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// ParseRole maps unknown or empty roles to guest.
func ParseRole(s string) Role {
	if r, ok := LookupRole(s); ok {
		return r
	}
	return RoleGuest
}

// LookupRole reports whether s names a known role.
func LookupRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleRank[r]
	return r, ok
}

func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

type Operation string

const (
	OpAdd  Operation = "add"
	OpEdit Operation = "edit"
	OpHide Operation = "hide"
	OpLock Operation = "lock"
)

var Operations = []Operation{OpAdd, OpEdit, OpHide, OpLock}

// Identity is the caller as seen by the revision engine.
type Identity struct {
	UserID int64
	Role   Role
}
