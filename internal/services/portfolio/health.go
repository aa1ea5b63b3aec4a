package portfolio

import (
	"fmt"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Holding return status thresholds, in percent
const (
	DangerReturnPct  = -10.0
	WarningReturnPct = -5.0
)

// CheckHoldingsHealth classifies each holding's return and same-day flow, in input order
func (s *Service) CheckHoldingsHealth(holdings []models.HoldingSnapshot) []models.HoldingHealth {
	out := make([]models.HoldingHealth, len(holdings))
	for i, h := range holdings {
		r := h.ReturnPct()
		status := classifyReturn(r)
		flow := classifyFlowSignal(h.Flow)
		out[i] = models.HoldingHealth{
			Ticker:    h.Ticker,
			ReturnPct: r,
			Status:    status,
			Flow:      flow,
			Note:      healthNote(status, flow, r),
		}
	}
	return out
}

func classifyReturn(r float64) models.ReturnStatus {
	switch {
	case r < DangerReturnPct:
		return models.StatusDanger
	case r < WarningReturnPct:
		return models.StatusWarning
	case r < 0:
		return models.StatusSlightLoss
	default:
		return models.StatusProfit
	}
}

// classifyFlowSignal uses the sign of net foreign plus institutional flow
func classifyFlowSignal(flow *models.TradingFlow) models.FlowSignal {
	if flow == nil {
		return models.FlowSignalNeutral
	}
	net := flow.Foreign + flow.Institutional
	switch {
	case net > 0:
		return models.FlowSignalPositive
	case net < 0:
		return models.FlowSignalNegative
	default:
		return models.FlowSignalNeutral
	}
}

func healthNote(status models.ReturnStatus, flow models.FlowSignal, r float64) string {
	var head string
	switch status {
	case models.StatusDanger:
		head = fmt.Sprintf("Danger: %s, review the stop-loss", common.FormatSignedPct(r))
	case models.StatusWarning:
		head = fmt.Sprintf("Warning: %s", common.FormatSignedPct(r))
	case models.StatusSlightLoss:
		head = fmt.Sprintf("Slight loss: %s", common.FormatSignedPct(r))
	default:
		head = fmt.Sprintf("In profit: %s", common.FormatSignedPct(r))
	}

	switch flow {
	case models.FlowSignalPositive:
		return head + "; net buying from foreign and institutional investors"
	case models.FlowSignalNegative:
		return head + "; net selling from foreign and institutional investors"
	default:
		return head + "; no clear flow"
	}
}
