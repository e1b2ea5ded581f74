package daemons

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	mu    sync.Mutex
	calls int
}

func (j *countingJob) Process() {
	j.mu.Lock()
	j.calls++
	j.mu.Unlock()

	time.Sleep(time.Millisecond)
}

func (j *countingJob) Calls() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.calls
}

func TestCronJobRunsUntilStopped(t *testing.T) {
	job := &countingJob{}
	worker := NewCronJob(job)

	stopped := make(chan struct{})
	go func() {
		worker.Start()
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return job.Calls() > 1 }, time.Second, time.Millisecond)

	worker.Stop()
	worker.Stop()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.False(t, worker.Running())
}

type recordingInvalidator struct {
	uids []string
}

func (r *recordingInvalidator) InvalidateUserStats(uid string) {
	r.uids = append(r.uids, uid)
}

func TestRegistrationListenerHandle(t *testing.T) {
	stats := &recordingInvalidator{}
	listener := NewRegistrationListener(nil, stats)

	listener.Handle([]byte(`{"uid":"user_new","email":"new@example.com","inviter_uid":"user1"}`))
	listener.Handle([]byte(`{"uid":"user_solo","email":"solo@example.com","inviter_uid":null}`))
	listener.Handle([]byte(`not json`))

	assert.Equal(t, []string{"user1"}, stats.uids)
}
