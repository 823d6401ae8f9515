// Package server runs an HTTP+WebSocket hub that broadcasts a Sheet's
// mutations to connected viewers. It is a read-only observer: it
// subscribes to Sheet.Subscribe and otherwise only reads the sheet's
// printable size for /snapshot, so it introduces no new write path —
// the goroutines live here, at the edge.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/websocket"

	"github.com/cellgraph/sheet/spreadsheet"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// cellChangedMessage is the wire shape pushed to every connected
// client on each Sheet mutation.
type cellChangedMessage struct {
	Position string `json:"position"`
	Value    string `json:"value"`
	Text     string `json:"text"`
}

// Hub tracks connected viewers and fans out CellChanged events it
// receives from a subscribed Sheet.
type Hub struct {
	sheet     *spreadsheet.Sheet
	errTokens spreadsheet.ErrorTokens

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

// New creates a Hub for sh, rendering any FormulaError it broadcasts
// using tokens. It subscribes to sh immediately; call Run in its own
// goroutine to start serving broadcasts.
func New(sh *spreadsheet.Sheet, tokens spreadsheet.ErrorTokens) *Hub {
	h := &Hub{
		sheet:      sh,
		errTokens:  tokens,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
	sh.Subscribe(h.onCellChanged)
	return h
}

func (h *Hub) onCellChanged(evt spreadsheet.CellChanged) {
	msg := cellChangedMessage{
		Position: evt.Pos.ToString(),
		Value:    renderValue(evt.Value, h.errTokens),
		Text:     evt.Text,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		// the run loop is not ready to receive (not started, or busy
		// with another case); drop rather than block the engine's
		// single-threaded caller.
	}
}

func renderValue(v spreadsheet.CellValue, tokens spreadsheet.ErrorTokens) string {
	switch val := v.(type) {
	case string:
		return val
	case spreadsheet.FormulaError:
		return val.Render(tokens)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return ""
	}
}

// Run services register/unregister/broadcast until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
		case <-stop:
			return
		}
	}
}

// Mux builds the HTTP handler: a gzip-wrapped snapshot endpoint and a
// WebSocket upgrade endpoint that streams future CellChanged events.
func (h *Hub) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.Handle("/snapshot", gziphandler.GzipHandler(http.HandlerFunc(h.serveSnapshot)))
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- c
	go c.writePump()
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	size := h.sheet.GetPrintableSize()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(size)
}
