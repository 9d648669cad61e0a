package payouts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bramblecoop/bramble/models"
)

const (
	MetricsMeasurement = "payout_runs"
	LastRunCacheKey    = "bramble:payouts:last_run"
)

// RunSummary describes one aggregation run.
type RunSummary struct {
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Since      time.Time       `json:"since"`
	Entries    int             `json:"entries"`
	Groups     int             `json:"groups"`
	Created    int             `json:"created"`
	Skipped    int             `json:"skipped"`
	GrossTotal decimal.Decimal `json:"gross_total"`
	FeeTotal   decimal.Decimal `json:"fee_total"`
	NetTotal   decimal.Decimal `json:"net_total"`
	Error      string          `json:"error,omitempty"`
}

func newRunSummary(now, since time.Time) *RunSummary {
	return &RunSummary{
		StartedAt:  now,
		Since:      since,
		GrossTotal: decimal.Zero,
		FeeTotal:   decimal.Zero,
		NetTotal:   decimal.Zero,
	}
}

func (s *RunSummary) add(group *Group, payout *models.Payout, fee decimal.Decimal) {
	s.Created++
	s.GrossTotal = s.GrossTotal.Add(group.Gross)
	s.FeeTotal = s.FeeTotal.Add(fee)
	s.NetTotal = s.NetTotal.Add(payout.Amount)
}

func (s *RunSummary) Failed() bool {
	return len(s.Error) > 0
}

func (s *RunSummary) Tags() map[string]string {
	status := "ok"
	if s.Failed() {
		status = "failed"
	}

	return map[string]string{"status": status}
}

func (s *RunSummary) Fields() map[string]interface{} {
	gross, _ := s.GrossTotal.Float64()
	net, _ := s.NetTotal.Float64()
	fees, _ := s.FeeTotal.Float64()

	return map[string]interface{}{
		"entries":     s.Entries,
		"groups":      s.Groups,
		"created":     s.Created,
		"skipped":     s.Skipped,
		"gross_total": gross,
		"fee_total":   fees,
		"net_total":   net,
		"duration_ms": s.FinishedAt.Sub(s.StartedAt).Milliseconds(),
	}
}

// Cache is the key/value store the last run summary is kept in.
type Cache interface {
	SetKey(key string, value interface{}, expiration time.Duration) error
	GetKey(key string, src interface{}) error
}

// CacheSummaryStore keeps the most recent RunSummary under LastRunCacheKey.
type CacheSummaryStore struct {
	Cache Cache
}

func (s *CacheSummaryStore) SaveRunSummary(_ context.Context, summary *RunSummary) error {
	return s.Cache.SetKey(LastRunCacheKey, summary, 0)
}

func (s *CacheSummaryStore) LastRunSummary(_ context.Context) (*RunSummary, error) {
	summary := &RunSummary{}
	if err := s.Cache.GetKey(LastRunCacheKey, summary); err != nil {
		return nil, err
	}

	return summary, nil
}
