package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calorie-bot/internal/handler"
	"calorie-bot/internal/ledger"
	"calorie-bot/internal/resolver"
)

type Config struct {
	Host string
	Port int
}

// Server exposes the resolution pipeline and daily ledger as an HTTP tool API
// for operators and other services, alongside the Telegram transport.
type Server struct {
	httpServer *http.Server
	handler    *handler.Handler
	ledger     *ledger.Ledger
	pipeline   *resolver.Pipeline
	log        *zap.Logger
}

func New(cfg *Config, h *handler.Handler, l *ledger.Ledger, p *resolver.Pipeline, log *zap.Logger) *Server {
	s := &Server{handler: h, ledger: l, pipeline: p, log: log}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/tools/call", s.handleToolCall)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: router,
	}
	return s
}

func (s *Server) handleToolCall(c *gin.Context) {
	var request protocol.CallToolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	var result *protocol.CallToolResult
	var err error

	switch request.Name {
	case "log_food":
		result, err = s.handleLogFood(c.Request.Context(), &request)
	case "resolve_food":
		result, err = s.handleResolveFood(c.Request.Context(), &request)
	case "get_total":
		result, err = s.handleGetTotal(&request)
	case "reset_today":
		result, err = s.handleResetToday(&request)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown tool: %s", request.Name)})
		return
	}

	if err != nil {
		s.log.Error("tool call failed", zap.String("tool", request.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting tool API", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	return s.httpServer.Shutdown(context.Background())
}

func createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
