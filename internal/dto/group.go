package dto

// CreateGroupRequest is the payload for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

// UpdateGroupRequest is the payload for renaming a group
type UpdateGroupRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

// AssignAccountsRequest is the payload for moving accounts into a group
type AssignAccountsRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}
