package jobs

type Job interface {
	Process()
}

// Stoppable jobs block in Process until Stop is called.
type Stoppable interface {
	Job
	Stop()
}
