package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go-consult/app/consult"
	"go-consult/common/log"
)

const (
	EventPinCreated     = "pin.created"
	EventEnquiryCreated = "enquiry.created"
)

// Event is one dashboard feed message.
type Event struct {
	Type      string `json:"type"`
	ProjectID int    `json:"projectId"`
	ID        int    `json:"id"`
}

type liveConn struct {
	ws   *websocket.Conn
	send chan Event
}

type liveHub struct {
	mu    sync.Mutex
	conns map[*liveConn]struct{}
}

var hub = &liveHub{conns: map[*liveConn]struct{}{}}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the dashboard is served from another origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Broadcast fans an event out to every connected dashboard. Slow consumers
// are dropped rather than blocking the submitting request.
func Broadcast(e Event) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for c := range hub.conns {
		select {
		case c.send <- e:
		default:
			delete(hub.conns, c)
			close(c.send)
		}
	}
}

// ServeLiveFeed upgrades the request and streams events until the client
// goes away.
func ServeLiveFeed(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		consult.Logger().WithContext(ctx).Error("ws upgrade: ", err.Error())
		return err
	}
	c := &liveConn{ws: ws, send: make(chan Event, 16)}
	hub.mu.Lock()
	hub.conns[c] = struct{}{}
	hub.mu.Unlock()

	log.SafeGo(func() { c.writeLoop() }, log.WithName("live feed writer"))
	log.SafeGo(func() { c.readLoop() }, log.WithName("live feed reader"))
	return nil
}

func (c *liveConn) writeLoop() {
	ping := time.NewTicker(30 * time.Second)
	defer func() {
		ping.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case e, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.ws.WriteJSON(e); err != nil {
				c.detach()
				return
			}
		case <-ping.C:
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.detach()
				return
			}
		}
	}
}

// readLoop only consumes control frames; clients never send data.
func (c *liveConn) readLoop() {
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			c.detach()
			return
		}
	}
}

func (c *liveConn) detach() {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if _, ok := hub.conns[c]; ok {
		delete(hub.conns, c)
		close(c.send)
	}
}
