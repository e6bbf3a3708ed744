package models

// CreateUserRequest represents the request body for creating a user.
// Validation is presence-only; field contents are not sanitized.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents the request body for partially updating a user.
// Pointer fields distinguish "key absent from the body" (nil) from "key
// supplied" (non-nil); a supplied field must be non-empty.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// HasFields reports whether at least one updatable field was supplied.
func (r *UpdateUserRequest) HasFields() bool {
	return r.Name != nil || r.Email != nil || r.Password != nil
}
