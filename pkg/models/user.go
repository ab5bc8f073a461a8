package models

type UserRole string

const (
	RoleOperator UserRole = "operator"
	RoleAdmin    UserRole = "admin"
	RoleAnalyst  UserRole = "analyst"
)

type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     *string  `json:"email,omitempty"`
	Role      UserRole `json:"role"`
	IsActive  bool     `json:"isActive"`
	LastLogin *string  `json:"lastLogin,omitempty"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role,omitempty"`
	IsActive bool     `json:"isActive"`
}

// UpdateUserRequest is the body of PATCH /users/:id. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username *string   `json:"username,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Role     *UserRole `json:"role,omitempty"`
	IsActive *bool     `json:"isActive,omitempty"`
}

// Empty reports whether the update carries no changes.
func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Role == nil && r.IsActive == nil
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

type SetPasswordResult struct {
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// ValidRole reports whether role is one the API accepts.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleOperator, RoleAdmin, RoleAnalyst:
		return true
	}
	return false
}
