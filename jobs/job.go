package jobs

// Job is a long running unit of work started by the daemon. Process blocks
// until the job is done with its current schedule.
type Job interface {
	Process()
}
