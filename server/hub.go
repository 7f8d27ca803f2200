// 渲染端快照推送：通过WebSocket向所有连接的客户端广播每一步的状态
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/task"
)

var log = logrus.WithField("module", "server")

const (
	snapshotBuffer = 64               // 待广播快照缓冲
	clientBuffer   = 16               // 单个客户端待发送消息缓冲
	pingInterval   = 30 * time.Second // 心跳间隔
	writeTimeout   = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub 快照广播中心
// 功能：接收仿真循环发布的快照，序列化后推送给所有客户端
// 说明：Publish从不阻塞仿真循环，缓冲满时直接丢弃该帧；慢客户端同样只丢帧不断开
type Hub struct {
	upgrader  websocket.Upgrader
	snapshots chan task.Snapshot

	register   chan *client
	unregister chan *client
	clients    map[*client]struct{}
	done       chan struct{}

	dropped atomic.Int64
}

// NewHub 创建广播中心，需要调用Run后才开始广播
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		snapshots:  make(chan task.Snapshot, snapshotBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
	}
}

// Publish 发布一帧快照（非阻塞）
func (h *Hub) Publish(s task.Snapshot) {
	select {
	case h.snapshots <- s:
	default:
		h.dropped.Add(1)
	}
}

// Dropped 因缓冲已满被丢弃的帧数
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Run 广播循环，直到c被取消
func (h *Hub) Run(c context.Context) {
	defer close(h.done)
	for {
		select {
		case <-c.Done():
			for cl := range h.clients {
				close(cl.send)
			}
			h.clients = nil
			return
		case cl := <-h.register:
			h.clients[cl] = struct{}{}
			log.Infof("client %v connected (%d total)", cl.conn.RemoteAddr(), len(h.clients))
		case cl := <-h.unregister:
			if _, ok := h.clients[cl]; ok {
				delete(h.clients, cl)
				close(cl.send)
				log.Infof("client %v disconnected (%d total)", cl.conn.RemoteAddr(), len(h.clients))
			}
		case s := <-h.snapshots:
			data, err := json.Marshal(s)
			if err != nil {
				log.Errorf("marshal snapshot: %v", err)
				continue
			}
			for cl := range h.clients {
				select {
				case cl.send <- data:
				default:
					h.dropped.Add(1)
				}
			}
		}
	}
}

// ServeHTTP 将HTTP连接升级为WebSocket并加入广播
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("failed to upgrade connection: %v", err)
		return
	}
	cl := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}
	go cl.writePump()
	cl.readPump(h)
}

// readPump 丢弃客户端消息，仅用于发现断开
func (cl *client) readPump(h *Hub) {
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case h.unregister <- cl:
	case <-h.done:
	}
}

func (cl *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case data, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ListenAndServe 在addr上提供/ws端点，直到c被取消
func (h *Hub) ListenAndServe(c context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-c.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()
	log.Infof("snapshot stream listening on %s/ws", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
