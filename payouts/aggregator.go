package payouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/types"
)

var (
	ErrNoLedger = errors.New("payouts: ledger reader is required")
	ErrNoStore  = errors.New("payouts: payout writer is required")
)

type LedgerReader interface {
	// EntriesSince returns entries created at or after since whose entity
	// type is one of entityTypes.
	EntriesSince(ctx context.Context, since time.Time, entityTypes []types.EntityType) ([]*models.LedgerEntry, error)
}

type PayoutWriter interface {
	Create(ctx context.Context, payout *models.Payout) error
}

type EventPublisher interface {
	PayoutCreated(ctx context.Context, payout *models.Payout) error
}

type SummaryStore interface {
	SaveRunSummary(ctx context.Context, summary *RunSummary) error
}

type MetricsWriter interface {
	NewPoint(name string, tags map[string]string, fields map[string]interface{}) error
}

// Aggregator turns a week of ledger entries into PENDING payouts.
//
// It does not lock against overlapping runs and does not look at payouts
// created by earlier runs: two runs over the same window create two payouts
// per payee.
type Aggregator struct {
	ledger  LedgerReader
	store   PayoutWriter
	policy  Policy
	now     func() time.Time
	logger  logrus.FieldLogger
	events  EventPublisher
	summary SummaryStore
	metrics MetricsWriter
}

type Option func(*Aggregator)

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Aggregator) { a.logger = logger }
}

func WithEvents(events EventPublisher) Option {
	return func(a *Aggregator) { a.events = events }
}

func WithSummaryStore(store SummaryStore) Option {
	return func(a *Aggregator) { a.summary = store }
}

func WithMetrics(metrics MetricsWriter) Option {
	return func(a *Aggregator) { a.metrics = metrics }
}

func NewAggregator(ledger LedgerReader, store PayoutWriter, policy Policy, opts ...Option) (*Aggregator, error) {
	if ledger == nil {
		return nil, ErrNoLedger
	}
	if store == nil {
		return nil, ErrNoStore
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	a := &Aggregator{
		ledger: ledger,
		store:  store,
		policy: policy,
		now:    time.Now,
		logger: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

func (a *Aggregator) Policy() Policy {
	return a.policy
}

// Run performs one aggregation. Any error aborts the rest of the run;
// payouts created before the error stay in place. The error is logged here
// and returned for callers that want it.
func (a *Aggregator) Run(ctx context.Context) (*RunSummary, error) {
	now := a.now()
	summary := newRunSummary(now, now.Add(-a.policy.Lookback))

	a.logger.Infof("==== Payout run started at %s (window since %s) ====",
		now.Format(time.RFC3339), summary.Since.Format(time.RFC3339))

	runCtx := ctx
	if a.policy.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, a.policy.RunTimeout)
		defer cancel()
	}

	err := a.run(runCtx, now, summary)
	summary.FinishedAt = a.now()

	if err != nil {
		summary.Error = err.Error()
		a.logger.Errorf("Payout run failed after %d payout(s): %v", summary.Created, err)
	} else {
		a.logger.Infof("==== Payout run finished: %d created, %d skipped, net total %s ====",
			summary.Created, summary.Skipped, summary.NetTotal.StringFixed(2))
	}

	a.report(ctx, summary)

	return summary, err
}

func (a *Aggregator) run(ctx context.Context, now time.Time, summary *RunSummary) error {
	entries, err := a.ledger.EntriesSince(ctx, summary.Since, a.policy.EntityTypes)
	if err != nil {
		return fmt.Errorf("fetch ledger entries: %w", err)
	}
	summary.Entries = len(entries)

	plan := BuildPlan(entries, now, a.policy)
	summary.Groups = len(plan.Decisions)

	for _, decision := range plan.Decisions {
		group := decision.Group

		if group.TenantConflict {
			a.logger.Warnf("Entries of %s carry more than one tenant, using %s", group.EntityKey, group.TenantID.String)
		}

		if decision.Skipped() {
			summary.Skipped++
			a.logger.Infof("Skipping %s: gross %s is below minimum payout %s",
				group.EntityKey, group.Gross.StringFixed(2), a.policy.MinPayout.StringFixed(2))
			continue
		}

		payout := decision.Payout
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("create payout for %s: %w", group.EntityKey, err)
		}
		if err := a.store.Create(ctx, payout); err != nil {
			return fmt.Errorf("create payout for %s: %w", group.EntityKey, err)
		}

		summary.add(group, payout, a.policy.ProcessingFee)
		a.logger.Infof("Created payout %s for %s: gross %s, net %s, scheduled for %s",
			payout.UUID, group.EntityKey, group.Gross.StringFixed(2), payout.Amount.StringFixed(2),
			payout.ScheduledFor.Format("2006-01-02"))

		if a.events != nil {
			if err := a.events.PayoutCreated(ctx, payout); err != nil {
				a.logger.Warnf("Failed to publish payout.created for %s: %v", payout.UUID, err)
			}
		}
	}

	return nil
}

func (a *Aggregator) report(ctx context.Context, summary *RunSummary) {
	if a.summary != nil {
		if err := a.summary.SaveRunSummary(ctx, summary); err != nil {
			a.logger.Warnf("Failed to save payout run summary: %v", err)
		}
	}

	if a.metrics != nil {
		if err := a.metrics.NewPoint(MetricsMeasurement, summary.Tags(), summary.Fields()); err != nil {
			a.logger.Warnf("Failed to write payout run metrics: %v", err)
		}
	}
}
