package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Snapshot is the pre-fetched market and holdings data one run analyzes
type Snapshot struct {
	Tickers  []TickerData
	Holdings []models.HoldingSnapshot
	Watched  []models.WatchedStock
	Themes   []models.ThemeGroup
}

// TickerData is the price and flow history of one ticker
type TickerData struct {
	Ticker string
	Bars   []models.EODBar
	Flows  []models.TradingFlow
	Basis  *models.PurchaseBasis
}

// snapshotFile is the JSON wire form. Dates are "2006-01-02" or RFC 3339.
type snapshotFile struct {
	Tickers  []tickerRecord      `json:"tickers"`
	Holdings []holdingRecord     `json:"holdings"`
	Watched  []watchedRecord     `json:"watched"`
	Themes   []models.ThemeGroup `json:"themes"`
}

type tickerRecord struct {
	Ticker string       `json:"ticker"`
	Bars   []barRecord  `json:"bars"`
	Flows  []flowRecord `json:"flows"`
	Basis  *basisRecord `json:"basis"`
}

type barRecord struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	AdjustedClose float64 `json:"adjusted_close"`
	Volume        int64   `json:"volume"`
}

type flowRecord struct {
	Date          string  `json:"date"`
	Individual    float64 `json:"individual"`
	Institutional float64 `json:"institutional"`
	Foreign       float64 `json:"foreign"`
}

type basisRecord struct {
	Price float64 `json:"price"`
	Date  string  `json:"date"`
}

type holdingRecord struct {
	models.Holding
	LatestPrice float64     `json:"latest_price"`
	Flow        *flowRecord `json:"flow"`
}

type watchedRecord struct {
	Ticker          string      `json:"ticker"`
	Name            string      `json:"name"`
	Theme           string      `json:"theme"`
	Price           float64     `json:"price"`
	WeeklyReturnPct float64     `json:"weekly_return_pct"`
	Flow            *flowRecord `json:"flow"`
}

// ReadSnapshotFile reads a snapshot from path, or from stdin when path is "-"
func ReadSnapshotFile(path string) (*Snapshot, error) {
	if path == "-" {
		return ReadSnapshot(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", path, err)
	}
	defer f.Close()

	snapshot, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("snapshot file %s: %w", path, err)
	}
	return snapshot, nil
}

// ReadSnapshot decodes a JSON snapshot
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var file snapshotFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	snapshot := &Snapshot{
		Tickers:  make([]TickerData, 0, len(file.Tickers)),
		Holdings: make([]models.HoldingSnapshot, 0, len(file.Holdings)),
		Watched:  make([]models.WatchedStock, 0, len(file.Watched)),
		Themes:   file.Themes,
	}

	for _, t := range file.Tickers {
		td, err := t.convert()
		if err != nil {
			return nil, fmt.Errorf("ticker %s: %w", t.Ticker, err)
		}
		snapshot.Tickers = append(snapshot.Tickers, td)
	}

	for _, h := range file.Holdings {
		flow, err := h.Flow.convert()
		if err != nil {
			return nil, fmt.Errorf("holding %s: %w", h.Ticker, err)
		}
		snapshot.Holdings = append(snapshot.Holdings, models.HoldingSnapshot{
			Holding:     h.Holding,
			LatestPrice: h.LatestPrice,
			Flow:        flow,
		})
	}

	for _, w := range file.Watched {
		flow, err := w.Flow.convert()
		if err != nil {
			return nil, fmt.Errorf("watched %s: %w", w.Ticker, err)
		}
		snapshot.Watched = append(snapshot.Watched, models.WatchedStock{
			Ticker:          w.Ticker,
			Name:            w.Name,
			Theme:           w.Theme,
			Price:           w.Price,
			WeeklyReturnPct: w.WeeklyReturnPct,
			Flow:            flow,
		})
	}

	return snapshot, nil
}

func (t tickerRecord) convert() (TickerData, error) {
	td := TickerData{
		Ticker: t.Ticker,
		Bars:   make([]models.EODBar, len(t.Bars)),
		Flows:  make([]models.TradingFlow, len(t.Flows)),
	}

	for i, bar := range t.Bars {
		date, err := parseDate(bar.Date)
		if err != nil {
			return td, fmt.Errorf("bar %d: %w", i, err)
		}
		td.Bars[i] = models.EODBar{
			Date:     date,
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: bar.AdjustedClose,
			Volume:   bar.Volume,
		}
	}

	for i := range t.Flows {
		flow, err := t.Flows[i].convert()
		if err != nil {
			return td, fmt.Errorf("flow %d: %w", i, err)
		}
		td.Flows[i] = *flow
	}

	if t.Basis != nil {
		date, err := parseDate(t.Basis.Date)
		if err != nil {
			return td, fmt.Errorf("basis: %w", err)
		}
		td.Basis = &models.PurchaseBasis{Price: t.Basis.Price, Date: date}
	}

	return td, nil
}

func (f *flowRecord) convert() (*models.TradingFlow, error) {
	if f == nil {
		return nil, nil
	}
	date, err := parseDate(f.Date)
	if err != nil {
		return nil, err
	}
	return &models.TradingFlow{
		Date:          date,
		Individual:    f.Individual,
		Institutional: f.Institutional,
		Foreign:       f.Foreign,
	}, nil
}

// parseDate accepts "2006-01-02" or RFC 3339. An empty string is the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}
