package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/langchou/fleetquery/internal/service"
	"github.com/langchou/fleetquery/pkg/ws"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Pinger 数据库连通性检查，repository.DB 实现该接口
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler HTTP 处理器
type Handler struct {
	logger    *zap.Logger
	assistant *service.Assistant
	wsHub     *ws.Hub
	db        Pinger
	gatherer  prometheus.Gatherer
	upgrader  websocket.Upgrader
}

// NewHandler 创建处理器；db 和 gatherer 可以为 nil
func NewHandler(
	logger *zap.Logger,
	assistant *service.Assistant,
	wsHub *ws.Hub,
	db Pinger,
	gatherer prometheus.Gatherer,
) *Handler {
	return &Handler{
		logger:    logger,
		assistant: assistant,
		wsHub:     wsHub,
		db:        db,
		gatherer:  gatherer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 来源由 CORS 配置控制
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(indexTemplate)

	// 页面
	r.GET("/", h.Index)

	// 问答
	r.POST("/query", h.Query)

	// API 路由
	api := r.Group("/api")
	{
		api.GET("/intents", h.ListIntents)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)

	// 指标
	if h.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	if !client.Register() {
		conn.Close()
		return
	}

	// 启动读写协程；连接的生命周期独立于本次 HTTP 请求
	go client.ReadPump(context.Background())
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Database ping failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "unavailable"
		} else {
			body["database"] = "ok"
		}
	}

	c.JSON(status, body)
}
