package cron

import (
	"context"
	"sync"

	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"

	"github.com/bramblecoop/bramble/payouts"
)

type Runner interface {
	Run(ctx context.Context) (*payouts.RunSummary, error)
}

// PayoutJob runs the payout aggregation on its weekly schedule. Overlapping
// runs are not prevented here; the scheduler fires once per week.
type PayoutJob struct {
	Runner   Runner
	Schedule payouts.Schedule
	Logger   logrus.FieldLogger

	done     chan struct{}
	stopOnce sync.Once
}

func NewPayoutJob(runner Runner, schedule payouts.Schedule, logger logrus.FieldLogger) *PayoutJob {
	return &PayoutJob{
		Runner:   runner,
		Schedule: schedule,
		Logger:   logger,
		done:     make(chan struct{}),
	}
}

func (j *PayoutJob) Process() {
	if j.Schedule.Location != nil {
		gocron.ChangeLoc(j.Schedule.Location)
	}

	s := gocron.NewScheduler()
	if err := s.Every(1).Weekday(j.Schedule.Weekday).At(j.Schedule.At).Do(j.Run); err != nil {
		// a job that failed Do stays registered without a function
		s.Clear()
		j.Logger.Errorf("Failed to schedule payout job at %q: %v", j.Schedule.At, err)
		<-j.done
		return
	}

	j.Logger.Infof("Payout job scheduled: %s (%s)", j.Schedule.Cron(), j.Schedule.Location)

	stopped := s.Start()
	<-j.done

	s.Clear()
	stopped <- true
}

func (j *PayoutJob) Run() {
	// errors are logged by the aggregator; the next tick runs regardless
	j.Runner.Run(context.Background())
}

func (j *PayoutJob) Stop() {
	j.stopOnce.Do(func() { close(j.done) })
}

// PayoutOnceJob runs the aggregation a single time.
type PayoutOnceJob struct {
	Runner Runner
}

func (j *PayoutOnceJob) Process() {
	j.Runner.Run(context.Background())
}
