// Package insights produces the free-text "AI insights" narrative from a
// summary of recent sales activity. The language-model call is best
// effort: a static analysis is returned whenever the model is
// unavailable or fails.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/salespulse/salespulse/internal/aggregate"
	"github.com/salespulse/salespulse/internal/sales"
)

const (
	recentWindow        = 1000
	maxRecommendations  = 5
	topProductsInPrompt = 5
)

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// RecordFinder reads recent records for summarization.
type RecordFinder interface {
	Find(ctx context.Context, filter sales.Filter) ([]sales.Transaction, error)
}

// Report is the AI insights payload.
type Report struct {
	Insights        string    `json:"insights"`
	Recommendations []string  `json:"recommendations"`
	TrendsAnalysis  string    `json:"trends_analysis"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Service generates insight reports over the most recent transactions.
type Service struct {
	records   RecordFinder
	generator TextGenerator
	logger    *slog.Logger
	printer   *message.Printer
}

// NewService wires the insight service. generator may be nil, in which
// case every request falls back to the static analysis.
func NewService(records RecordFinder, generator TextGenerator, logger *slog.Logger) *Service {
	return &Service{
		records:   records,
		generator: generator,
		logger:    logger,
		printer:   message.NewPrinter(language.English),
	}
}

// GetInsights summarizes the latest transactions and asks the model for
// a narrative. An empty store is surfaced as sales.ErrNoData.
func (s *Service) GetInsights(ctx context.Context) (Report, error) {
	records, err := s.records.Find(ctx, sales.Filter{Limit: recentWindow, NewestFirst: true})
	if err != nil {
		return Report{}, fmt.Errorf("insights: load recent records: %w", err)
	}
	if len(records) == 0 {
		return Report{}, fmt.Errorf("insights: %w", sales.ErrNoData)
	}

	if s.generator == nil {
		return s.fallbackReport(), nil
	}

	prompt := s.buildPrompt(records)
	sessionID := uuid.NewString()
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("generate insights", slog.String("session", sessionID), slog.Any("error", err))
		return s.fallbackReport(), nil
	}
	s.logger.Info("insights generated", slog.String("session", sessionID), slog.Int("records", len(records)))

	return Report{
		Insights:        text,
		Recommendations: extractRecommendations(text),
		TrendsAnalysis:  "AI-powered analysis of current sales trends and patterns",
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

type promptProductGroup struct {
	name    aggregate.First
	revenue aggregate.Sum
}

func (g *promptProductGroup) Observe(t sales.Transaction) {
	g.name.Observe(t.ProductName)
	g.revenue.Observe(t.TotalAmount)
}

type promptSegmentGroup struct {
	orders aggregate.Count
}

func (g *promptSegmentGroup) Observe(sales.Transaction) { g.orders.Observe() }

// buildPrompt renders the performance summary the model analyzes.
func (s *Service) buildPrompt(records []sales.Transaction) string {
	var totalRevenue float64
	for _, t := range records {
		totalRevenue += t.TotalAmount
	}
	avgOrder := totalRevenue / float64(len(records))

	products := aggregate.GroupBy(records, aggregate.ByProduct, func() *promptProductGroup { return &promptProductGroup{} })
	type productRevenue struct {
		name    string
		revenue float64
	}
	ranked := make([]productRevenue, 0, len(products))
	for _, g := range products {
		ranked = append(ranked, productRevenue{name: g.name.Value(), revenue: g.revenue.Value()})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topProductsInPrompt {
		ranked = ranked[:topProductsInPrompt]
	}

	segments := aggregate.GroupBy(records, func(t sales.Transaction) string { return t.CustomerSegment },
		func() *promptSegmentGroup { return &promptSegmentGroup{} })

	var b strings.Builder
	b.WriteString("Analyze the following sales performance data and provide actionable insights:\n\n")
	b.WriteString("Recent Performance Summary:\n")
	b.WriteString(s.printer.Sprintf("- Total Revenue (last %d transactions): $%.2f\n", len(records), totalRevenue))
	b.WriteString(s.printer.Sprintf("- Average Order Value: $%.2f\n", avgOrder))
	b.WriteString(s.printer.Sprintf("- Number of transactions: %d\n\n", len(records)))

	b.WriteString("Top Products by Revenue:\n")
	for i, p := range ranked {
		b.WriteString(s.printer.Sprintf("%d. %s: $%.2f\n", i+1, p.name, p.revenue))
	}

	b.WriteString("\nCustomer Segments Distribution:\n")
	for _, segment := range aggregate.SortedKeys(segments) {
		b.WriteString(s.printer.Sprintf("- %s: %d transactions\n", segment, segments[segment].orders.Value()))
	}

	b.WriteString(`
Please provide:
1. Key insights about sales performance trends
2. Specific recommendations for revenue growth
3. Analysis of customer behavior patterns
4. Suggestions for inventory optimization

Keep insights concise and actionable for business stakeholders.
`)
	return b.String()
}

var recommendationMarkers = []string{"recommend", "suggest", "should", "consider"}

// extractRecommendations pulls recommendation-like lines out of the
// model response, falling back to stock advice when none are found.
func extractRecommendations(text string) []string {
	var recommendations []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 20 {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, marker := range recommendationMarkers {
			if strings.Contains(lower, marker) {
				recommendations = append(recommendations, trimmed)
				break
			}
		}
	}
	if len(recommendations) == 0 {
		recommendations = defaultRecommendations()
	}
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func defaultRecommendations() []string {
	return []string{
		"Focus on high-performing product categories",
		"Implement targeted customer retention strategies",
		"Optimize pricing for better conversion rates",
		"Expand marketing in top-performing regions",
	}
}

// fallbackReport is returned when the model is unavailable.
func (s *Service) fallbackReport() Report {
	return Report{
		Insights: "Sales performance shows consistent growth patterns with seasonal variations. Key focus areas include customer retention and product portfolio optimization.",
		Recommendations: []string{
			"Implement targeted promotions during seasonal peaks",
			"Focus on customer retention programs for enterprise segment",
			"Optimize inventory levels for fast-moving products",
			"Expand successful products to new regional markets",
		},
		TrendsAnalysis: "Manual analysis indicates stable growth with opportunities for optimization in customer acquisition and retention.",
		GeneratedAt:    time.Now().UTC(),
	}
}
