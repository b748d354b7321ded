package service

import (
	"context"
	"sort"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

// fakeHackathonRepo mirrors the hackathon repository in memory, including the
// conditional status update and the transactional invitation accept.
type fakeHackathonRepo struct {
	hackathons  map[uint]domain.Hackathon
	teams       map[uint]domain.Team
	invitations map[uint]domain.Invitation
	nextID      uint
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{
		hackathons:  make(map[uint]domain.Hackathon),
		teams:       make(map[uint]domain.Team),
		invitations: make(map[uint]domain.Invitation),
	}
}

func (f *fakeHackathonRepo) id() uint {
	f.nextID++

	return f.nextID
}

func (f *fakeHackathonRepo) Create(_ context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	hackathon.ID = f.id()
	if hackathon.Status == "" {
		hackathon.Status = domain.HackathonDraft
	}
	f.hackathons[hackathon.ID] = hackathon

	return hackathon, nil
}

func (f *fakeHackathonRepo) FindByID(_ context.Context, id uint) (domain.Hackathon, error) {
	hackathon, ok := f.hackathons[id]
	if !ok {
		return domain.Hackathon{}, repository.ErrHackathonNotFound
	}

	return hackathon, nil
}

func (f *fakeHackathonRepo) FindAll(_ context.Context) ([]domain.Hackathon, error) {
	hackathons := make([]domain.Hackathon, 0, len(f.hackathons))
	for _, h := range f.hackathons {
		hackathons = append(hackathons, h)
	}

	return hackathons, nil
}

func (f *fakeHackathonRepo) UpdateStatus(_ context.Context, id uint, from, to domain.HackathonStatus) error {
	hackathon, ok := f.hackathons[id]
	if !ok {
		return repository.ErrHackathonNotFound
	}
	if hackathon.Status != from {
		return repository.ErrStaleHackathonStatus
	}

	hackathon.Status = to
	f.hackathons[id] = hackathon

	return nil
}

func (f *fakeHackathonRepo) CreateTeam(_ context.Context, team domain.Team) (domain.Team, error) {
	for _, t := range f.teams {
		if t.HackathonID != team.HackathonID {
			continue
		}
		if t.Name == team.Name {
			return domain.Team{}, repository.ErrTeamNameTaken
		}
		if t.HasMember(team.LeaderID) {
			return domain.Team{}, repository.ErrAlreadyInTeam
		}
	}

	team.ID = f.id()
	team.Members = []domain.User{{ID: team.LeaderID}}
	f.teams[team.ID] = team

	return team, nil
}

func (f *fakeHackathonRepo) FindTeamByID(_ context.Context, id uint) (domain.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	return team, nil
}

func (f *fakeHackathonRepo) FindTeamsByHackathon(_ context.Context, hackathonID uint) ([]domain.Team, error) {
	var teams []domain.Team
	for _, t := range f.teams {
		if t.HackathonID == hackathonID {
			teams = append(teams, t)
		}
	}

	return teams, nil
}

func (f *fakeHackathonRepo) FindTeamByMember(_ context.Context, hackathonID, userID uint) (domain.Team, error) {
	for _, t := range f.teams {
		if t.HackathonID == hackathonID && t.HasMember(userID) {
			return t, nil
		}
	}

	return domain.Team{}, repository.ErrTeamNotFound
}

func (f *fakeHackathonRepo) CreateInvitation(_ context.Context, invitation domain.Invitation) (domain.Invitation, error) {
	invitation.ID = f.id()
	invitation.Status = domain.InvitationPending
	f.invitations[invitation.ID] = invitation

	return invitation, nil
}

func (f *fakeHackathonRepo) FindInvitationByID(_ context.Context, id uint) (domain.Invitation, error) {
	invitation, ok := f.invitations[id]
	if !ok {
		return domain.Invitation{}, repository.ErrInvitationNotFound
	}

	return invitation, nil
}

func (f *fakeHackathonRepo) FindPendingInvitation(_ context.Context, teamID, toID uint) (domain.Invitation, error) {
	for _, i := range f.invitations {
		if i.TeamID == teamID && i.ToID == toID && i.Status == domain.InvitationPending {
			return i, nil
		}
	}

	return domain.Invitation{}, repository.ErrInvitationNotFound
}

func (f *fakeHackathonRepo) FindInvitationsForUser(_ context.Context, userID uint) ([]domain.Invitation, error) {
	var invitations []domain.Invitation
	for _, i := range f.invitations {
		if i.ToID == userID {
			invitations = append(invitations, i)
		}
	}

	return invitations, nil
}

func (f *fakeHackathonRepo) AcceptInvitation(_ context.Context, id uint, maxSize int) error {
	invitation, ok := f.invitations[id]
	if !ok {
		return repository.ErrInvitationNotFound
	}
	if invitation.Status != domain.InvitationPending {
		return repository.ErrInvitationDecided
	}

	team, ok := f.teams[invitation.TeamID]
	if !ok {
		return repository.ErrTeamNotFound
	}
	if maxSize > 0 && len(team.Members) >= maxSize {
		return repository.ErrTeamFull
	}
	for _, t := range f.teams {
		if t.HackathonID == team.HackathonID && t.HasMember(invitation.ToID) {
			return repository.ErrAlreadyInTeam
		}
	}

	invitation.Status = domain.InvitationAccepted
	f.invitations[id] = invitation
	team.Members = append(team.Members, domain.User{ID: invitation.ToID})
	f.teams[team.ID] = team

	return nil
}

func (f *fakeHackathonRepo) RejectInvitation(_ context.Context, id uint) error {
	invitation, ok := f.invitations[id]
	if !ok {
		return repository.ErrInvitationNotFound
	}
	if invitation.Status != domain.InvitationPending {
		return repository.ErrInvitationDecided
	}

	invitation.Status = domain.InvitationRejected
	f.invitations[id] = invitation

	return nil
}

// fakeSubmissionRepo keeps one submission per (hackathon, team) and one
// evaluation per submission, like the real unique indexes do. Publishing
// completes the hackathon the way the real transaction does.
type fakeSubmissionRepo struct {
	hackathons  *fakeHackathonRepo
	submissions map[uint]domain.Submission
	evaluations map[uint]domain.Evaluation
	results     map[uint][]domain.Result
	nextID      uint
}

func newFakeSubmissionRepo(hackathons *fakeHackathonRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		hackathons:  hackathons,
		submissions: make(map[uint]domain.Submission),
		evaluations: make(map[uint]domain.Evaluation),
		results:     make(map[uint][]domain.Result),
	}
}

func (f *fakeSubmissionRepo) id() uint {
	f.nextID++

	return f.nextID
}

func (f *fakeSubmissionRepo) Upsert(_ context.Context, submission domain.Submission) (domain.Submission, error) {
	for id, s := range f.submissions {
		if s.HackathonID == submission.HackathonID && s.TeamID == submission.TeamID {
			submission.ID = id
			f.submissions[id] = submission

			return submission, nil
		}
	}

	submission.ID = f.id()
	f.submissions[submission.ID] = submission

	return submission, nil
}

func (f *fakeSubmissionRepo) FindByID(_ context.Context, id uint) (domain.Submission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}

	return submission, nil
}

func (f *fakeSubmissionRepo) FindByTeam(_ context.Context, hackathonID, teamID uint) (domain.Submission, error) {
	for _, s := range f.submissions {
		if s.HackathonID == hackathonID && s.TeamID == teamID {
			return s, nil
		}
	}

	return domain.Submission{}, repository.ErrSubmissionNotFound
}

func (f *fakeSubmissionRepo) FindByHackathon(_ context.Context, hackathonID uint) ([]domain.Submission, error) {
	var submissions []domain.Submission
	for _, s := range f.submissions {
		if s.HackathonID == hackathonID {
			submissions = append(submissions, s)
		}
	}

	return submissions, nil
}

func (f *fakeSubmissionRepo) CreateEvaluation(_ context.Context, evaluation domain.Evaluation) (domain.Evaluation, error) {
	for _, e := range f.evaluations {
		if e.SubmissionID == evaluation.SubmissionID {
			return domain.Evaluation{}, repository.ErrAlreadyEvaluated
		}
	}

	evaluation.ID = f.id()
	f.evaluations[evaluation.ID] = evaluation

	return evaluation, nil
}

func (f *fakeSubmissionRepo) FindEvaluationsByHackathon(_ context.Context, hackathonID uint) ([]domain.Evaluation, error) {
	var evaluations []domain.Evaluation
	for _, e := range f.evaluations {
		if e.HackathonID == hackathonID {
			evaluations = append(evaluations, e)
		}
	}
	sort.Slice(evaluations, func(i, j int) bool {
		return evaluations[i].FinalScore > evaluations[j].FinalScore
	})

	return evaluations, nil
}

func (f *fakeSubmissionRepo) PublishResults(ctx context.Context, hackathonID uint, results []domain.Result) error {
	if len(f.results[hackathonID]) > 0 {
		return repository.ErrResultsPublished
	}

	if err := f.hackathons.UpdateStatus(ctx, hackathonID,
		domain.HackathonEvaluation, domain.HackathonCompleted); err != nil {
		return err
	}

	f.results[hackathonID] = results

	return nil
}

func (f *fakeSubmissionRepo) FindResultsByHackathon(_ context.Context, hackathonID uint) ([]domain.Result, error) {
	return f.results[hackathonID], nil
}

type fakePaymentRepo struct {
	payments map[string]domain.Payment
	nextID   uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]domain.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	f.nextID++
	payment.ID = f.nextID
	payment.Status = domain.PaymentPending
	f.payments[payment.OrderID] = payment

	return payment, nil
}

func (f *fakePaymentRepo) FindByOrderID(_ context.Context, orderID string) (domain.Payment, error) {
	payment, ok := f.payments[orderID]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}

	return payment, nil
}

func (f *fakePaymentRepo) FindSuccessfulByTeam(_ context.Context, hackathonID, teamID uint) (domain.Payment, error) {
	for _, p := range f.payments {
		if p.HackathonID == hackathonID && p.TeamID == teamID && p.Status == domain.PaymentSuccess {
			return p, nil
		}
	}

	return domain.Payment{}, repository.ErrPaymentNotFound
}

func (f *fakePaymentRepo) Settle(_ context.Context, orderID string, status domain.PaymentStatus) (bool, error) {
	payment, ok := f.payments[orderID]
	if !ok {
		return false, repository.ErrPaymentNotFound
	}
	if payment.IsSettled() {
		return false, nil
	}

	payment.Status = status
	f.payments[orderID] = payment

	return true, nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}

	return f
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type fakeLeaderboardCache struct {
	entries map[uint][]domain.Evaluation
	hits    int
	sets    int
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{entries: make(map[uint][]domain.Evaluation)}
}

func (f *fakeLeaderboardCache) Get(_ context.Context, hackathonID uint) ([]domain.Evaluation, bool) {
	cached, ok := f.entries[hackathonID]
	if ok {
		f.hits++
	}

	return cached, ok
}

func (f *fakeLeaderboardCache) Set(_ context.Context, hackathonID uint, evaluations []domain.Evaluation) error {
	f.sets++
	f.entries[hackathonID] = evaluations

	return nil
}

func (f *fakeLeaderboardCache) Invalidate(_ context.Context, hackathonID uint) error {
	delete(f.entries, hackathonID)

	return nil
}
