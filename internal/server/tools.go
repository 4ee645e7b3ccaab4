package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"calorie-bot/internal/models"
	"calorie-bot/internal/resolver"
)

type LogFoodParams struct {
	UserID string `json:"user_id" description:"User whose daily total the entries are recorded under"`
	Text   string `json:"text" description:"Free-text food names, comma or newline separated"`
}

type ResolveFoodParams struct {
	Query string `json:"query" description:"Single food name to resolve to kcal per 100g"`
}

type UserParams struct {
	UserID string `json:"user_id" description:"User identifier"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}
	return nil
}

// handleLogFood runs the full resolve-and-record flow for one message.
func (s *Server) handleLogFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if params.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	report, err := s.handler.Process(ctx, params.UserID, params.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to log food: %w", err)
	}
	return createJSONResponse(report)
}

// handleResolveFood resolves a single query without touching the ledger.
func (s *Server) handleResolveFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ResolveFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	kcal, source, found := s.pipeline.Resolve(ctx, params.Query)
	return createJSONResponse(models.Item{
		Query:  resolver.Normalize(params.Query),
		Kcal:   kcal,
		Found:  found,
		Source: source,
	})
}

// handleGetTotal reads today's running total for a user.
func (s *Server) handleGetTotal(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UserParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	return createJSONResponse(map[string]interface{}{
		"user_id":    params.UserID,
		"total_kcal": s.ledger.Total(params.UserID),
	})
}

// handleResetToday zeroes today's total for a user.
func (s *Server) handleResetToday(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UserParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	if err := s.ledger.Reset(params.UserID); err != nil {
		return nil, fmt.Errorf("failed to reset total: %w", err)
	}
	return createJSONResponse(map[string]interface{}{
		"user_id":    params.UserID,
		"total_kcal": 0,
	})
}
