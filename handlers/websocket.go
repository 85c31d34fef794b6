package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"
	"yatube/config"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// writeWait bounds a single write to a follower's socket
const writeWait = 10 * time.Second

// socket is one open connection; send returns false once the connection is gone
type socket struct {
	send func([]byte) bool
}

// socketConn is the part of *websocket.Conn a socket writes through
type socketConn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// newSocket serializes writes to conn, which also come from the requests creating posts.
// A failed or timed out write closes conn, ending its read loop
func newSocket(conn socketConn, userID uint64) (s *socket, closeSocket func()) {
	var mutex sync.Mutex
	open := true
	s = &socket{}
	s.send = func(data []byte) bool {
		mutex.Lock()
		defer mutex.Unlock()
		if !open {
			return false
		}
		err := conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err == nil {
			err = conn.WriteMessage(websocket.TextMessage, data)
		}
		if err != nil {
			log.Printf("Websocket write error for user %d: %v", userID, err)
			open = false
			_ = conn.Close()
		}
		return open
	}
	closeSocket = func() {
		mutex.Lock()
		open = false
		mutex.Unlock()
	}
	return
}

// hub tracks open sockets per user id, a user may have several tabs open
type hub struct {
	sockets cmap.ConcurrentMap[string, []*socket]
}

var (
	readers = hub{sockets: cmap.New[[]*socket]()}

	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
)

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range config.CORSOrigins() {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func hubKey(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func (h *hub) add(userID uint64, s *socket) {
	h.sockets.Upsert(hubKey(userID), nil, func(exist bool, current, _ []*socket) []*socket {
		if exist {
			return append(current, s)
		}
		return []*socket{s}
	})
}

func (h *hub) remove(userID uint64, s *socket) {
	key := hubKey(userID)
	h.sockets.Upsert(key, nil, func(exist bool, current, _ []*socket) (left []*socket) {
		for _, other := range current {
			if other != s {
				left = append(left, other)
			}
		}
		return
	})
	h.sockets.RemoveCb(key, func(_ string, v []*socket, exists bool) bool {
		return exists && len(v) == 0
	})
}

func (h *hub) empty() bool {
	return h.sockets.Count() == 0
}

// sendTo delivers data to every socket of the user, dropping dead ones
func (h *hub) sendTo(userID uint64, data []byte) (delivered int) {
	sockets, ok := h.sockets.Get(hubKey(userID))
	if !ok {
		return
	}
	for _, s := range sockets {
		if s.send(data) {
			delivered++
		} else {
			h.remove(userID, s)
		}
	}
	return
}

// WebSocket keeps a connection open to push new posts of followed authors
func WebSocket(c *gin.Context, user *models.User) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	s, closeSocket := newSocket(conn, user.ID)
	readers.add(user.ID, s)
	defer readers.remove(user.ID, s)

	// Clients only ping, anything else is logged and ignored
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			closeSocket()
			return
		}
		if string(message) == "ping" {
			if !s.send([]byte("pong")) {
				return
			}
			continue
		}
		log.Printf("Unexpected websocket message from user %d (type %d): %s", user.ID, mt, message)
	}
}
