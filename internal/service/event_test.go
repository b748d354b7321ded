package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/domain"
)

var (
	admin   = domain.User{ID: 1, Role: domain.RoleAdmin}
	student = domain.User{ID: 2, Role: domain.RoleStudent}
)

func seedEvent(t *testing.T, repo *fakeEventRepo, status domain.EventStatus) domain.Event {
	t.Helper()

	event, err := repo.Create(context.Background(), domain.Event{
		Title:       "Tech Day",
		EventDate:   time.Now().Add(time.Hour),
		EndDate:     time.Now().Add(8 * time.Hour),
		Status:      status,
		OrganizerID: admin.ID,
	})
	require.NoError(t, err)

	return event
}

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.CreateEvent(context.Background(), domain.Event{}, student)

		assert.ErrorIs(t, err, ErrNotAdmin)
	})

	t.Run("end must follow start", func(t *testing.T) {
		_, err := svc.CreateEvent(context.Background(), domain.Event{
			EventDate: time.Now().Add(2 * time.Hour),
			EndDate:   time.Now().Add(time.Hour),
		}, admin)

		assert.ErrorIs(t, err, ErrInvalidEventDates)
	})

	t.Run("created in draft owned by creator", func(t *testing.T) {
		event, err := svc.CreateEvent(context.Background(), domain.Event{
			Title:     "Tech Day",
			EventDate: time.Now().Add(time.Hour),
			EndDate:   time.Now().Add(8 * time.Hour),
		}, admin)

		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusDraft, event.Status)
		assert.Equal(t, admin.ID, event.OrganizerID)
	})
}

func TestEventTransition(t *testing.T) {
	t.Run("draft goes live", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)
		event := seedEvent(t, repo, domain.EventStatusDraft)

		updated, err := svc.Transition(context.Background(), event.ID, domain.EventStatusLive, admin)

		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusLive, updated.Status)
	})

	t.Run("skipping live is illegal", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)
		event := seedEvent(t, repo, domain.EventStatusDraft)

		_, err := svc.Transition(context.Background(), event.ID, domain.EventStatusCompleted, admin)

		assert.ErrorIs(t, err, ErrIllegalEventTransition)
	})

	t.Run("only the organizer", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)
		event := seedEvent(t, repo, domain.EventStatusDraft)

		otherAdmin := domain.User{ID: 99, Role: domain.RoleAdmin}
		_, err := svc.Transition(context.Background(), event.ID, domain.EventStatusLive, otherAdmin)

		assert.ErrorIs(t, err, ErrNotOrganizer)
	})

	t.Run("an ended event cannot go live", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)
		event, err := repo.Create(context.Background(), domain.Event{
			EventDate:   time.Now().Add(-8 * time.Hour),
			EndDate:     time.Now().Add(-time.Hour),
			Status:      domain.EventStatusDraft,
			OrganizerID: admin.ID,
		})
		require.NoError(t, err)

		_, err = svc.Transition(context.Background(), event.ID, domain.EventStatusLive, admin)

		assert.ErrorIs(t, err, ErrEventEnded)
	})
}

func TestSetQREnabled(t *testing.T) {
	t.Run("live only", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)
		event := seedEvent(t, repo, domain.EventStatusDraft)

		_, err := svc.SetQREnabled(context.Background(), event.ID, true, admin)

		assert.ErrorIs(t, err, ErrEventNotLive)
	})

	t.Run("organizer flips the flag", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo)
		event := seedEvent(t, repo, domain.EventStatusLive)

		updated, err := svc.SetQREnabled(context.Background(), event.ID, true, admin)
		require.NoError(t, err)
		assert.True(t, updated.QREnabled)
		assert.Equal(t, event.ID, updated.ID)

		stored, err := repo.FindByID(context.Background(), event.ID)
		require.NoError(t, err)
		assert.True(t, stored.QREnabled)
	})
}

func TestCreateRoleSlot(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	event := seedEvent(t, repo, domain.EventStatusDraft)

	t.Run("slot must fit inside the event", func(t *testing.T) {
		_, err := svc.CreateRoleSlot(context.Background(), domain.RoleSlot{
			EventID:   event.ID,
			Role:      domain.EventRoleVolunteer,
			StartTime: event.EventDate.Add(-time.Hour),
			EndTime:   event.EndDate,
		}, admin)

		assert.ErrorIs(t, err, ErrSlotOutsideEvent)
	})

	t.Run("created while in draft", func(t *testing.T) {
		slot, err := svc.CreateRoleSlot(context.Background(), domain.RoleSlot{
			EventID:   event.ID,
			Role:      domain.EventRoleVolunteer,
			StartTime: event.EventDate,
			EndTime:   event.EndDate,
			MaxSeats:  5,
		}, admin)

		require.NoError(t, err)
		assert.NotZero(t, slot.ID)
	})

	t.Run("locked once live", func(t *testing.T) {
		live := seedEvent(t, repo, domain.EventStatusLive)

		_, err := svc.CreateRoleSlot(context.Background(), domain.RoleSlot{
			EventID:   live.ID,
			Role:      domain.EventRoleVolunteer,
			StartTime: live.EventDate,
			EndTime:   live.EndDate,
		}, admin)

		assert.ErrorIs(t, err, ErrEventNotDraft)
	})
}
