package service

// SyncOutcome labels the result of one account synchronization.
type SyncOutcome string

const (
	SyncOutcomeExisting     SyncOutcome = "existing"
	SyncOutcomeCreated      SyncOutcome = "created"
	SyncOutcomeRaceResolved SyncOutcome = "race_resolved"
	SyncOutcomeFailed       SyncOutcome = "failed"
)

// MetricsRecorder collects counters for the auth subsystem.
type MetricsRecorder interface {
	RecordSync(outcome SyncOutcome)
	RecordGuardDecision(kind string)
	RecordSessionEvent(eventType SessionEventType)
}
