package dto

// SetRoleRequest payload for admin role assignment.
type SetRoleRequest struct {
	Role string `json:"role"`
}
