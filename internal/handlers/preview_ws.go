package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/services"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// PreviewFrame is sent for every deck a client posts
type PreviewFrame struct {
	Success bool           `json:"success"`
	HTML    string         `json:"html"`
	Slides  []layout.Slide `json:"slides"`
}

// PreviewHandler streams live layout previews over a websocket. Nothing is
// fetched on this path; images are linked by URL.
type PreviewHandler struct {
	upgrader     websocket.Upgrader
	maxFrameSize int64
}

// NewPreviewHandler creates a preview handler accepting the given origins
func NewPreviewHandler(allowedOrigins []string, maxFrameSize int64) *PreviewHandler {
	return &PreviewHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || originAllowed(allowedOrigins, origin)
			},
		},
		maxFrameSize: maxFrameSize,
	}
}

// ServeWS upgrades the connection and answers each deck frame
// GET /api/preview/ws
func (h *PreviewHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade preview connection: %v", err)
		return
	}
	defer conn.Close()

	if h.maxFrameSize > 0 {
		conn.SetReadLimit(h.maxFrameSize)
	}
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	frames := make(chan interface{})
	done := make(chan struct{})
	go h.writeLoop(conn, frames, done)
	defer func() {
		close(frames)
		<-done
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Preview connection closed: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		select {
		case frames <- previewFrame(message):
		case <-done:
			return
		}
	}
}

func previewFrame(message []byte) interface{} {
	var deck models.Deck
	if err := json.Unmarshal(message, &deck); err != nil {
		return models.ErrorResponse{Success: false, Message: "Invalid JSON", Error: err.Error()}
	}

	ld, doc, err := services.Preview(&deck)
	if err != nil {
		return models.ErrorResponse{Success: false, Message: "Failed to render preview", Error: err.Error()}
	}
	return PreviewFrame{Success: true, HTML: string(doc), Slides: ld.Slides}
}

// writeLoop owns all writes on conn, interleaving frames with pings
func (h *PreviewHandler) writeLoop(conn *websocket.Conn, frames <-chan interface{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-frames:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(frame); err != nil {
				log.Printf("Failed to write preview frame: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
