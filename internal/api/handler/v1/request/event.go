package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/eventra/eventra-api/internal/domain"
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.EventDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
}

type TransitionEventRequest struct {
	Status string `json:"status" binding:"required"`
}

func (req *TransitionEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In(string(domain.EventStatusLive), string(domain.EventStatusCompleted))),
	)
}

type SetQRRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (req *SetQRRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Enabled, validation.NotNil),
	)
}

type CreateRoleSlotRequest struct {
	Role      string    `json:"role" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	MaxSeats  int       `json:"max_seats"`
}

func (req *CreateRoleSlotRequest) Validate() error {
	roles := make([]interface{}, 0, len(domain.EventRoles))
	for _, r := range domain.EventRoles {
		roles = append(roles, r)
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In(roles...)),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
		validation.Field(&req.MaxSeats, validation.Min(0)),
	)
}

type ApplyRoleRequest struct {
	RoleSlotID uint `json:"role_slot_id" binding:"required"`
}

func (req *ApplyRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoleSlotID, validation.Required, validation.Min(uint(1))),
	)
}
