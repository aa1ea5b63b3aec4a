// Package portfolio provides read-only portfolio diagnostics
package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/interfaces"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Compile-time interface check
var _ interfaces.PortfolioService = (*Service)(nil)

var hundred = decimal.NewFromInt(100)

// Service implements PortfolioService
type Service struct {
	currency string
	logger   *common.Logger
}

// NewService creates a new portfolio service. currency is the ISO 4217 code
// used in diagnosis messages; a nil logger discards output.
func NewService(currency string, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		currency: common.CurrencyCode(currency),
		logger:   logger,
	}
}

// position holds exact per-holding amounts
type position struct {
	snapshot   models.HoldingSnapshot
	investment decimal.Decimal
	valuation  decimal.Decimal
}

func (p position) profit() decimal.Decimal {
	return p.valuation.Sub(p.investment)
}

// positions converts holdings to exact amounts and returns the totals
func positions(holdings []models.HoldingSnapshot) ([]position, decimal.Decimal, decimal.Decimal) {
	out := make([]position, len(holdings))
	totalInvestment := decimal.Zero
	totalValuation := decimal.Zero

	for i, h := range holdings {
		qty := decimal.NewFromFloat(h.Quantity)
		p := position{
			snapshot:   h,
			investment: decimal.NewFromFloat(h.PurchasePrice).Mul(qty),
			valuation:  decimal.NewFromFloat(h.LatestPrice).Mul(qty),
		}
		out[i] = p
		totalInvestment = totalInvestment.Add(p.investment)
		totalValuation = totalValuation.Add(p.valuation)
	}
	return out, totalInvestment, totalValuation
}

// percentOf returns part/whole*100, or 0 when whole is not positive
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).InexactFloat64()
}

// Summarize totals investment and valuation across holdings
func (s *Service) Summarize(holdings []models.HoldingSnapshot) models.PortfolioSummary {
	pos, totalInvestment, totalValuation := positions(holdings)

	lines := make([]models.HoldingSummary, len(pos))
	for i, p := range pos {
		lines[i] = models.HoldingSummary{
			Ticker:     p.snapshot.Ticker,
			Name:       p.snapshot.Name,
			Theme:      p.snapshot.Theme,
			Investment: p.investment.InexactFloat64(),
			Valuation:  p.valuation.InexactFloat64(),
			Profit:     p.profit().InexactFloat64(),
			ReturnPct:  percentOf(p.profit(), p.investment),
		}
	}

	totalProfit := totalValuation.Sub(totalInvestment)
	return models.PortfolioSummary{
		Holdings:        lines,
		TotalInvestment: totalInvestment.InexactFloat64(),
		TotalValuation:  totalValuation.InexactFloat64(),
		TotalProfit:     totalProfit.InexactFloat64(),
		TotalReturnPct:  percentOf(totalProfit, totalInvestment),
	}
}

// Allocate returns each holding's share of total valuation, in input order
func (s *Service) Allocate(holdings []models.HoldingSnapshot) []models.Allocation {
	pos, _, totalValuation := positions(holdings)

	out := make([]models.Allocation, len(pos))
	for i, p := range pos {
		out[i] = models.Allocation{
			Ticker:    p.snapshot.Ticker,
			Theme:     p.snapshot.Theme,
			Valuation: p.valuation.InexactFloat64(),
			Percent:   percentOf(p.valuation, totalValuation),
		}
	}
	return out
}

// Contributions returns each holding's profit as a percentage of total
// invested capital, largest first. The percentages sum to the total return.
func (s *Service) Contributions(holdings []models.HoldingSnapshot) []models.Contribution {
	pos, totalInvestment, _ := positions(holdings)

	out := make([]models.Contribution, len(pos))
	for i, p := range pos {
		out[i] = models.Contribution{
			Ticker:  p.snapshot.Ticker,
			Profit:  p.profit().InexactFloat64(),
			Percent: percentOf(p.profit(), totalInvestment),
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	return out
}
