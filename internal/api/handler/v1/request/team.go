package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type InviteRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (req *InviteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
	)
}
