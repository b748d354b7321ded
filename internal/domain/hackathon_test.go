package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHackathonCanTransition(t *testing.T) {
	order := []HackathonStatus{
		HackathonDraft,
		HackathonRegistrationOpen,
		HackathonRegistrationClosed,
		HackathonSubmissionOpen,
		HackathonEvaluation,
		HackathonCompleted,
	}

	for i, from := range order {
		for j, to := range order {
			h := Hackathon{Status: from}
			want := j == i+1

			assert.Equal(t, want, h.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestHackathonTransitionGate(t *testing.T) {
	h := Hackathon{
		RegistrationStart:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		RegistrationDeadline: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		HackathonStart:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		SubmissionDeadline:   time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC),
		HackathonEnd:         time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, h.RegistrationStart, h.TransitionGate(HackathonRegistrationOpen))
	assert.Equal(t, h.RegistrationDeadline, h.TransitionGate(HackathonRegistrationClosed))
	assert.Equal(t, h.HackathonStart, h.TransitionGate(HackathonSubmissionOpen))
	assert.Equal(t, h.SubmissionDeadline, h.TransitionGate(HackathonEvaluation))
	assert.True(t, h.TransitionGate(HackathonCompleted).IsZero())

	// Unset dates leave the transition unguarded.
	assert.True(t, Hackathon{}.TransitionGate(HackathonRegistrationOpen).IsZero())
}

func TestTeamMembership(t *testing.T) {
	team := Team{
		LeaderID: 7,
		Members:  []User{{ID: 7}, {ID: 12}},
	}

	assert.True(t, team.IsLeader(7))
	assert.False(t, team.IsLeader(12))
	assert.True(t, team.HasMember(12))
	assert.False(t, team.HasMember(99))
}

func TestEvaluationComputeFinalScore(t *testing.T) {
	e := Evaluation{Technical: 8, Innovation: 7, Presentation: 9}
	e.ComputeFinalScore()

	assert.InDelta(t, 8.0, e.FinalScore, 0.0001)

	zero := Evaluation{}
	zero.ComputeFinalScore()
	assert.Zero(t, zero.FinalScore)
}
