package message

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	MineID     *int64 `json:"mine_id"`
	Content    string `json:"content" binding:"required"`
}

// wsClientMessage is what a connected client writes to the socket.
type wsClientMessage struct {
	Type       string `json:"type"`
	ReceiverID int64  `json:"receiver_id"`
	MineID     *int64 `json:"mine_id"`
	Content    string `json:"content"`
}

type wsEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func newMessageEvent(payload any) wsEvent {
	return wsEvent{Type: "message", Payload: payload}
}

func newErrorEvent(code, msg string) wsEvent {
	return wsEvent{Type: "error", Code: code, Message: msg}
}

func newPongEvent() wsEvent {
	return wsEvent{Type: "pong"}
}
