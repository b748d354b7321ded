package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusLive      EventStatus = "live"
	EventStatusCompleted EventStatus = "completed"
)

// eventNext is the forward-only transition table for events.
var eventNext = map[EventStatus]EventStatus{
	EventStatusDraft: EventStatusLive,
	EventStatusLive:  EventStatusCompleted,
}

type Event struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	EventDate   time.Time   `json:"event_date"`
	EndDate     time.Time   `json:"end_date"`
	Status      EventStatus `json:"status"`
	OrganizerID uint        `json:"organizer_id"`
	QREnabled   bool        `json:"qr_enabled"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CanTransition reports whether to is the legal next status.
func (e Event) CanTransition(to EventStatus) bool {
	return eventNext[e.Status] == to
}

func (e Event) IsOrganizer(userID uint) bool {
	return e.OrganizerID == userID
}

// HasEnded reports whether the event window has passed at the given time.
func (e Event) HasEnded(now time.Time) bool {
	return now.After(e.EndDate)
}
