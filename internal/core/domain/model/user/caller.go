package user

// Caller is the authenticated identity on whose behalf a request runs.
type Caller struct {
	ID   int64
	Role Role
}

func NewCaller(id int64, role Role) Caller {
	return Caller{ID: id, Role: role}
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
