package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WriteTimeout bounds a single frame write to a slow client
const WriteTimeout = time.Second

// SafeWriter serializes writes to a websocket connection.
// Reads are not guarded and must stay on a single goroutine.
type SafeWriter struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

// WriteMessage writes one frame
func (w *SafeWriter) WriteMessage(messageType int, data []byte) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if err := w.conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return err
	}
	return w.conn.WriteMessage(messageType, data)
}

// ReadMessage reads one frame
func (w *SafeWriter) ReadMessage() (int, []byte, error) {
	return w.conn.ReadMessage()
}

func (w *SafeWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.Close()
}
