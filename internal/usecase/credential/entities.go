package credential

import "preauth-tracker/internal/domain/user"

type CreateUserInput struct {
	Username string
	Password string
	Role     user.Role
}

// UpdateUserInput is a partial patch; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Password *string
	Role     *user.Role
}
