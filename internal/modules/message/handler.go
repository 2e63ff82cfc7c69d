package message

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	jwtsvc "minemarket/internal/pkg/jwt"
	"minemarket/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin checks are delegated to the CORS layer
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwt}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	m := protected.Group("/messages")
	{
		m.POST("", h.Send)
		m.GET("/conversation/:userId", h.Conversation)
		m.GET("/mine/:mineId", h.ListByMine)
	}
	// websockets cannot carry an Authorization header; the token rides the query
	public.GET("/ws/messages", h.HandleWebSocket)
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) Conversation(c *gin.Context) {
	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || otherID <= 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	msgs, err := h.service.Conversation(c.Request.Context(), actorFrom(c), otherID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

func (h *Handler) ListByMine(c *gin.Context) {
	mineID, err := strconv.ParseInt(c.Param("mineId"), 10, 64)
	if err != nil || mineID <= 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid mine id")
		return
	}

	msgs, err := h.service.ListByMine(c.Request.Context(), actorFrom(c), mineID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Fail(c, http.StatusUnauthorized, "Token is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	actor := authz.Actor{ID: claims.UserID, Role: claims.Role}
	h.hub.Register(actor.ID, conn)
	defer func() {
		h.hub.Unregister(actor.ID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go pingLoop(conn)

	h.readLoop(conn, actor)
}

func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *Handler) readLoop(conn *websocket.Conn, actor authz.Actor) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("websocket error for user %d: %v", actor.ID, err)
			}
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = conn.WriteJSON(newErrorEvent("INVALID_JSON", "Failed to parse message"))
			continue
		}

		switch msg.Type {
		case "message":
			h.handleInbound(conn, actor, msg)
		case "ping":
			_ = conn.WriteJSON(newPongEvent())
		default:
			_ = conn.WriteJSON(newErrorEvent("UNKNOWN_TYPE", "Unknown message type: "+msg.Type))
		}
	}
}

func (h *Handler) handleInbound(conn *websocket.Conn, actor authz.Actor, msg wsClientMessage) {
	stored, err := h.service.Send(context.Background(), actor, SendMessageRequest{
		ReceiverID: msg.ReceiverID,
		MineID:     msg.MineID,
		Content:    msg.Content,
	})
	if err != nil {
		_ = conn.WriteJSON(newErrorEvent("SEND_FAILED", err.Error()))
		return
	}
	// echo back as delivery confirmation; the recipient is notified by Send
	_ = conn.WriteJSON(newMessageEvent(stored))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid message payload")
	case errors.Is(err, ErrForbidden):
		response.Fail(c, http.StatusForbidden, "You do not own this mine")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Recipient or mine not found")
	default:
		response.Error(c, http.StatusInternalServerError, "Message operation failed")
	}
}
