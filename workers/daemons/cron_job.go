package daemons

import (
	"sync"

	"github.com/zsmartex/rebate/jobs"
)

// CronJob runs its jobs side by side. A job whose Process returns is
// restarted until the worker is stopped.
type CronJob struct {
	Jobs []jobs.Job

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func NewCronJob(cron_jobs ...jobs.Job) *CronJob {
	return &CronJob{Jobs: cron_jobs, done: make(chan struct{})}
}

func (c *CronJob) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

func (c *CronJob) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.running = false
		close(c.done)
	}
}

// Start blocks until Stop is called.
func (c *CronJob) Start() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()

	for _, job := range c.Jobs {
		go c.Process(job)
	}

	<-c.done
}

func (c *CronJob) Process(job jobs.Job) {
	for c.Running() {
		job.Process()
	}
}
