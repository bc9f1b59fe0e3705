package access

// Policy is the permission gate. It is a pure value: no I/O, safe to share.
type Policy struct {
	MinRole map[Operation]Role

	// Role needed to change anything on a locked entity.
	LockOverride Role

	// When false, editors below LockOverride may only edit entities whose
	// first revision they authored.
	EditorsEditOthers bool
}

func DefaultPolicy() Policy {
	return Policy{
		MinRole: map[Operation]Role{
			OpAdd:  RoleEditor,
			OpEdit: RoleEditor,
			OpHide: RoleEditor,
			OpLock: RoleAdmin,
		},
		LockOverride:      RoleAdmin,
		EditorsEditOthers: true,
	}
}

type Request struct {
	Role   Role
	Op     Operation
	Locked bool // lock state of the entity before the change
	Author bool // caller authored revision 1
}

func (p Policy) Allows(req Request) bool {
	if req.Role == RoleGuest {
		return false
	}
	min, ok := p.MinRole[req.Op]
	if !ok || !req.Role.AtLeast(min) {
		return false
	}
	if req.Op == OpAdd {
		return true
	}
	if req.Locked && !req.Role.AtLeast(p.LockOverride) {
		return false
	}
	if !p.EditorsEditOthers && !req.Author && !req.Role.AtLeast(p.LockOverride) {
		return false
	}
	return true
}

// AllowsAll reports whether every operation in ops is allowed.
func (p Policy) AllowsAll(role Role, ops []Operation, locked, author bool) bool {
	for _, op := range ops {
		if !p.Allows(Request{Role: role, Op: op, Locked: locked, Author: author}) {
			return false
		}
	}
	return true
}
