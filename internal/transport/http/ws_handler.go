package http

import (
	"encoding/json"
	"log"
	"net/http"

	"globetrotter-service/internal/app"
	"github.com/gorilla/websocket"
)

// PlayHandler serves an interactive quiz loop over a websocket: the client
// requests questions and submits answers on one connection, with the username
// bound once at upgrade time.
type PlayHandler struct {
	quiz     *app.QuizService
	upgrader websocket.Upgrader
}

func NewPlayHandler(quiz *app.QuizService) *PlayHandler {
	return &PlayHandler{
		quiz: quiz,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type answerPayload struct {
	DestinationID string `json:"destinationId"`
	Answer        string `json:"answer"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServePlay upgrades the request and runs the question/answer exchange. All
// writes happen from this goroutine, so no write pump is needed.
func (h *PlayHandler) ServePlay(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "question":
			question, err := h.quiz.GetQuestion(r.Context())
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, outboundMessage[any]{Type: "question", Payload: question})
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid answer payload")
				continue
			}
			result, err := h.quiz.VerifyAnswer(r.Context(), payload.DestinationID, payload.Answer, username)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, outboundMessage[any]{Type: "answerResult", Payload: result})
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *PlayHandler) send(conn *websocket.Conn, msg outboundMessage[any]) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *PlayHandler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}})
}
