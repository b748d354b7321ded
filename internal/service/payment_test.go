package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/payments/stub"
)

const webhookSecret = "test-secret"

func paymentSetup(t *testing.T, paymentRequired bool) (*fakePaymentRepo, *PaymentService, domain.Team) {
	t.Helper()

	hackRepo := newFakeHackathonRepo()
	payRepo := newFakePaymentRepo()
	svc := NewPaymentService(payRepo, hackRepo, stub.New(webhookSecret))

	hackathon, err := hackRepo.Create(context.Background(), domain.Hackathon{
		TeamSizeMin:     1,
		TeamSizeMax:     4,
		Status:          domain.HackathonRegistrationOpen,
		PaymentRequired: paymentRequired,
		EntryFee:        50000,
		CreatedByID:     admin.ID,
	})
	require.NoError(t, err)

	team, err := hackRepo.CreateTeam(context.Background(), domain.Team{
		HackathonID: hackathon.ID,
		Name:        "byte-me",
		LeaderID:    leader.ID,
	})
	require.NoError(t, err)

	return payRepo, svc, team
}

func signWebhook(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrder(t *testing.T) {
	t.Run("opens a pending order for the entry fee", func(t *testing.T) {
		_, svc, team := paymentSetup(t, true)

		payment, err := svc.CreateOrder(context.Background(), team.ID, leader)

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, payment.Status)
		assert.Equal(t, int64(50000), payment.Amount)
		assert.NotEmpty(t, payment.OrderID)
	})

	t.Run("leader only", func(t *testing.T) {
		_, svc, team := paymentSetup(t, true)

		_, err := svc.CreateOrder(context.Background(), team.ID, student)

		assert.ErrorIs(t, err, ErrNotTeamLeader)
	})

	t.Run("free hackathon", func(t *testing.T) {
		_, svc, team := paymentSetup(t, false)

		_, err := svc.CreateOrder(context.Background(), team.ID, leader)

		assert.ErrorIs(t, err, ErrPaymentNotRequired)
	})

	t.Run("already paid", func(t *testing.T) {
		payRepo, svc, team := paymentSetup(t, true)

		payment, err := svc.CreateOrder(context.Background(), team.ID, leader)
		require.NoError(t, err)
		_, err = payRepo.Settle(context.Background(), payment.OrderID, domain.PaymentSuccess)
		require.NoError(t, err)

		_, err = svc.CreateOrder(context.Background(), team.ID, leader)
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})
}

func TestHandleWebhook(t *testing.T) {
	t.Run("paid notification settles the order", func(t *testing.T) {
		payRepo, svc, team := paymentSetup(t, true)

		payment, err := svc.CreateOrder(context.Background(), team.ID, leader)
		require.NoError(t, err)

		body := []byte(fmt.Sprintf(`{"order_id":%q,"status":"paid"}`, payment.OrderID))
		require.NoError(t, svc.HandleWebhook(context.Background(), body, signWebhook(body)))

		settled, err := payRepo.FindByOrderID(context.Background(), payment.OrderID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentSuccess, settled.Status)
	})

	t.Run("failed notification records the failure", func(t *testing.T) {
		payRepo, svc, team := paymentSetup(t, true)

		payment, err := svc.CreateOrder(context.Background(), team.ID, leader)
		require.NoError(t, err)

		body := []byte(fmt.Sprintf(`{"order_id":%q,"status":"failed"}`, payment.OrderID))
		require.NoError(t, svc.HandleWebhook(context.Background(), body, signWebhook(body)))

		settled, err := payRepo.FindByOrderID(context.Background(), payment.OrderID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentFailed, settled.Status)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		_, svc, team := paymentSetup(t, true)

		payment, err := svc.CreateOrder(context.Background(), team.ID, leader)
		require.NoError(t, err)

		body := []byte(fmt.Sprintf(`{"order_id":%q,"status":"paid"}`, payment.OrderID))
		err = svc.HandleWebhook(context.Background(), body, "deadbeef")

		assert.ErrorIs(t, err, ErrBadWebhook)
	})

	t.Run("redelivery is acknowledged without a second settle", func(t *testing.T) {
		payRepo, svc, team := paymentSetup(t, true)

		payment, err := svc.CreateOrder(context.Background(), team.ID, leader)
		require.NoError(t, err)

		body := []byte(fmt.Sprintf(`{"order_id":%q,"status":"paid"}`, payment.OrderID))
		require.NoError(t, svc.HandleWebhook(context.Background(), body, signWebhook(body)))

		// A late "failed" redelivery must not flip a settled payment.
		late := []byte(fmt.Sprintf(`{"order_id":%q,"status":"failed"}`, payment.OrderID))
		require.NoError(t, svc.HandleWebhook(context.Background(), late, signWebhook(late)))

		settled, err := payRepo.FindByOrderID(context.Background(), payment.OrderID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentSuccess, settled.Status)
	})
}

func TestGetPaymentStatus(t *testing.T) {
	payRepo, svc, team := paymentSetup(t, true)

	payment, err := svc.CreateOrder(context.Background(), team.ID, leader)
	require.NoError(t, err)
	_, err = payRepo.Settle(context.Background(), payment.OrderID, domain.PaymentSuccess)
	require.NoError(t, err)

	t.Run("member reads the standing", func(t *testing.T) {
		got, err := svc.GetStatus(context.Background(), team.ID, leader)

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentSuccess, got.Status)
	})

	t.Run("outsiders do not", func(t *testing.T) {
		_, err := svc.GetStatus(context.Background(), team.ID, student)

		assert.Error(t, err)
	})
}
