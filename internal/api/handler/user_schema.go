package handler

type updateUserRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Name  *string `json:"name"  validate:"omitempty,min=2"`
	Role  *string `json:"role"  validate:"omitempty,oneof=USER ADMIN"`
}
