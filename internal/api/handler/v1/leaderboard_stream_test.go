package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/domain"
)

type fakeEvalService struct {
	leaderboard []domain.Evaluation
}

func (f *fakeEvalService) Evaluate(_ context.Context, evaluation domain.Evaluation, _ domain.User) (domain.Evaluation, error) {
	return evaluation, nil
}

func (f *fakeEvalService) Leaderboard(_ context.Context, _ uint) ([]domain.Evaluation, error) {
	return f.leaderboard, nil
}

func (f *fakeEvalService) PublishResults(_ context.Context, _ uint, _ domain.User) ([]domain.Result, error) {
	return nil, nil
}

func (f *fakeEvalService) Results(_ context.Context, _ uint) ([]domain.Result, error) {
	return nil, nil
}

// dialPair upgrades a loopback connection and hands back the server side.
func dialPair(t *testing.T) *websocket.Conn {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientConn.Close() })

	return <-conns
}

func TestPushSnapshots(t *testing.T) {
	t.Run("delivers the board to a listening client", func(t *testing.T) {
		h := NewLeaderboardStreamHandler(&fakeEvalService{
			leaderboard: []domain.Evaluation{{HackathonID: 1, FinalScore: 9}},
		})
		client := &streamClient{conn: dialPair(t), send: make(chan []byte, 8), hackathonID: 1}
		h.clients[client] = struct{}{}

		h.pushSnapshots()

		payload := <-client.send
		assert.Contains(t, string(payload), `"final_score":9`)
	})

	t.Run("slow client keeps its channel open", func(t *testing.T) {
		h := NewLeaderboardStreamHandler(&fakeEvalService{
			leaderboard: []domain.Evaluation{{HackathonID: 1}},
		})
		client := &streamClient{conn: dialPair(t), send: make(chan []byte, 1), hackathonID: 1}
		client.send <- []byte("backlog")
		h.clients[client] = struct{}{}

		h.pushSnapshots()
		h.pushSnapshots()

		// The backlog entry is still there and the channel was not closed,
		// so a concurrent sender cannot panic on it.
		msg, ok := <-client.send
		require.True(t, ok)
		assert.Equal(t, "backlog", string(msg))
		select {
		case _, ok := <-client.send:
			assert.True(t, ok)
		default:
		}
	})
}
