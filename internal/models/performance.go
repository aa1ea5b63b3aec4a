package models

import "time"

// PurchaseBasis re-anchors return calculations at a purchase.
type PurchaseBasis struct {
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
}

// Drawdown describes the largest peak-to-trough decline of a series.
type Drawdown struct {
	Percent    float64   `json:"percent"`
	Peak       float64   `json:"peak"`
	Trough     float64   `json:"trough"`
	PeakDate   time.Time `json:"peak_date"`
	TroughDate time.Time `json:"trough_date"`
}

// ReturnStats bundles the return and risk statistics of a price series.
type ReturnStats struct {
	DataPoints           int       `json:"data_points"`
	PeriodReturn         float64   `json:"period_return"`
	AnnualizedReturn     NullFloat `json:"annualized_return"`
	DailyVolatility      NullFloat `json:"daily_volatility"`
	AnnualizedVolatility NullFloat `json:"annualized_volatility"`
	MaxDrawdown          Drawdown  `json:"max_drawdown"`
}
