package daemons

import (
	"sync"

	"github.com/bramblecoop/bramble/jobs"
)

// CronJob keeps its jobs running until Stop. A job whose Process returns
// is started again.
type CronJob struct {
	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
	Jobs    []jobs.Job
}

func NewCronJob(list ...jobs.Job) *CronJob {
	return &CronJob{running: true, Jobs: list}
}

func (c *CronJob) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

func (c *CronJob) Stop() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	for _, job := range c.Jobs {
		if s, ok := job.(jobs.Stoppable); ok {
			s.Stop()
		}
	}
}

// Start blocks until every job has returned after Stop.
func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		c.wg.Add(1)
		go c.Process(job)
	}

	c.wg.Wait()
}

func (c *CronJob) Process(job jobs.Job) {
	defer c.wg.Done()

	for {
		if !c.Running() {
			break
		}

		job.Process()
	}
}

// OnceJob runs each job one time, in order.
type OnceJob struct {
	Jobs []jobs.Job
}

func NewOnceJob(list ...jobs.Job) *OnceJob {
	return &OnceJob{Jobs: list}
}

func (o *OnceJob) Start() {
	for _, job := range o.Jobs {
		job.Process()
	}
}

func (o *OnceJob) Stop() {}
