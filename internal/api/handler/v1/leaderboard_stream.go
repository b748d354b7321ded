package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type streamClient struct {
	conn        *websocket.Conn
	send        chan []byte
	hackathonID uint
}

// LeaderboardStreamHandler pushes leaderboard snapshots to websocket clients
// watching a hackathon. Clients get the current board on connect and a fresh
// one every refresh tick while scores keep coming in.
type LeaderboardStreamHandler struct {
	evalSvc EvaluationService

	clientsMutex sync.RWMutex
	clients      map[*streamClient]struct{}
	register     chan *streamClient
	unregister   chan *streamClient
	refresh      time.Duration
}

func NewLeaderboardStreamHandler(evalSvc EvaluationService) *LeaderboardStreamHandler {
	return &LeaderboardStreamHandler{
		evalSvc:    evalSvc,
		clients:    make(map[*streamClient]struct{}),
		register:   make(chan *streamClient),
		unregister: make(chan *streamClient),
		refresh:    5 * time.Second,
	}
}

func (h *LeaderboardStreamHandler) Run() {
	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case <-ticker.C:
			h.pushSnapshots()
		}
	}
}

func (h *LeaderboardStreamHandler) pushSnapshots() {
	h.clientsMutex.RLock()
	watched := make(map[uint][]*streamClient)
	for client := range h.clients {
		watched[client.hackathonID] = append(watched[client.hackathonID], client)
	}
	h.clientsMutex.RUnlock()

	for hackathonID, clients := range watched {
		leaderboard, err := h.evalSvc.Leaderboard(context.Background(), hackathonID)
		if err != nil {
			zap.L().Warn("leaderboard snapshot failed",
				zap.Uint("hackathon_id", hackathonID), zap.Error(err))
			continue
		}

		payload, err := json.Marshal(leaderboard)
		if err != nil {
			continue
		}

		for _, client := range clients {
			select {
			case client.send <- payload:
			default:
				// Slow client. Drop the connection instead of closing the
				// channel here; the read pump unregisters the client, and
				// only the unregister path closes send.
				client.conn.Close()
			}
		}
	}
}

// HandleStream godoc
// @Summary      Stream leaderboard updates over websocket
// @Tags         hackathons,evaluations
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      101          {string}  string "Switching Protocols to WebSocket"
// @Failure      400          {object}  response.Err
// @Router       /hackathons/{hackathonID}/leaderboard/stream [get]
// @Security     BearerAuth
func (h *LeaderboardStreamHandler) HandleStream(ctx *gin.Context) {
	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &streamClient{
		conn:        conn,
		send:        make(chan []byte, 8),
		hackathonID: hackathonID,
	}
	h.register <- client

	// Send the current board immediately so the client is not left waiting
	// for the first tick.
	if leaderboard, err := h.evalSvc.Leaderboard(ctx.Request.Context(), hackathonID); err == nil {
		if payload, err := json.Marshal(leaderboard); err == nil {
			client.send <- payload
		}
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *streamClient) writePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (c *streamClient) readPump(h *LeaderboardStreamHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	// Clients only listen; reads just detect disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket read error", zap.Error(err))
			}
			break
		}
	}
}
