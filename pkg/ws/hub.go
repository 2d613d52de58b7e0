package ws

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType WebSocket 消息类型
const (
	MsgTypeAnswer = "answer" // 问题的回答
	MsgTypeError  = "error"  // 错误消息
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
)

// Message WebSocket 消息结构
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// AnswerData 一问一答
type AnswerData struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// AnswerFunc 回答一个问题
type AnswerFunc func(ctx context.Context, question string) string

// Client WebSocket 客户端
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub WebSocket 连接管理中心
type Hub struct {
	logger     *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	answer AnswerFunc
}

// NewHub 创建 Hub
func NewHub(logger *zap.Logger, answer AnswerFunc) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		answer:     answer,
	}
}

// Run 运行 Hub，ctx 结束后返回
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("WebSocket client connected", zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, client)
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("WebSocket client disconnected", zap.Int("total_clients", total))

		case <-ctx.Done():
			// 关闭连接使各客户端的 ReadPump 退出
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.conn.Close()
			}
			h.mu.Unlock()
			return
		}
	}
}

// ClientCount 获取客户端数量
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewClient 创建客户端
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Register 注册客户端，Hub 已停止时返回 false
func (c *Client) Register() bool {
	select {
	case c.hub.register <- c:
		return true
	case <-c.hub.done:
		return false
	}
}

// Unregister 注销客户端
func (c *Client) Unregister() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// ReadPump 每个文本帧是一个问题，回答只发给提问的客户端
// send 只由 ReadPump 写入和关闭
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.Unregister()
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		msgType, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("WebSocket read failed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			c.reply(MsgTypeError, "only text messages are supported")
			continue
		}

		question := strings.TrimSpace(string(payload))
		if question == "" {
			c.reply(MsgTypeError, "query is required")
			continue
		}
		if c.hub.answer == nil {
			c.reply(MsgTypeError, "no answer provider configured")
			continue
		}

		c.reply(MsgTypeAnswer, AnswerData{Query: question, Response: c.hub.answer(ctx, question)})
	}
}

// reply 非阻塞发送，缓冲区满时丢弃
func (c *Client) reply(msgType string, data interface{}) {
	msg, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		c.hub.logger.Error("Failed to marshal websocket message", zap.Error(err))
		return
	}

	select {
	case c.send <- msg:
	default:
		c.hub.logger.Warn("Failed to send websocket message, client buffer full")
	}
}

// WritePump 发送消息
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
