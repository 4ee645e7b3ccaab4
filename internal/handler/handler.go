package handler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"calorie-bot/internal/ledger"
	"calorie-bot/internal/models"
	"calorie-bot/internal/resolver"
)

// Tokens are separated by commas, newlines, or runs of two or more spaces.
// A single space is not a delimiter so multi-word names stay intact.
var splitRe = regexp.MustCompile(`[,\n]+|\s{2,}`)

// Handler turns one raw message into a report: split into tokens, resolve
// each, record successes in the daily ledger, read back the running total.
type Handler struct {
	pipeline *resolver.Pipeline
	ledger   *ledger.Ledger
	log      *zap.Logger
}

func New(pipeline *resolver.Pipeline, ledger *ledger.Ledger, log *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, ledger: ledger, log: log}
}

// Split extracts normalized query tokens from raw text.
func Split(text string) []string {
	parts := splitRe.Split(strings.ToLower(strings.TrimSpace(text)), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Process resolves every token in text and feeds successes into the ledger.
// A ledger write failure aborts the request; nothing else does.
func (h *Handler) Process(ctx context.Context, user, text string) (*models.Report, error) {
	tokens := Split(text)
	if len(tokens) == 0 {
		return &models.Report{Empty: true}, nil
	}

	report := &models.Report{}
	for _, q := range tokens {
		kcal, source, found := h.pipeline.Resolve(ctx, q)
		if !found {
			report.Items = append(report.Items, models.Item{Query: q})
			continue
		}
		if err := h.ledger.Add(user, kcal); err != nil {
			return nil, fmt.Errorf("failed to record %q: %w", q, err)
		}
		report.TotalAdded += kcal
		report.Items = append(report.Items, models.Item{
			Query:  q,
			Kcal:   kcal,
			Found:  true,
			Source: source,
		})
	}

	report.TotalToday = h.ledger.Total(user)
	return report, nil
}

// FormatReport renders a report as the reply text sent back to the user.
func FormatReport(r *models.Report) string {
	if r.Empty {
		return "Пожалуйста, отправьте название продукта."
	}

	lines := make([]string, 0, len(r.Items)+1)
	for _, item := range r.Items {
		if item.Found {
			lines = append(lines, fmt.Sprintf("✅ %s ≈ %d ккал", item.Query, item.Kcal))
		} else {
			lines = append(lines, fmt.Sprintf("❓ %s — не найдено.", item.Query))
		}
	}
	lines = append(lines, fmt.Sprintf("\nВсего за сегодня: %d ккал.", r.TotalToday))
	return strings.Join(lines, "\n")
}
