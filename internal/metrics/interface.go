package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPlayersRegistered()
	IncMatchesReported(kind string)
	IncPairingsGenerated()
	IncTournamentsCompleted()
	IncPostsAdded()
	ObserveStandingsDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	IncEventsFailed()
	SetStartupTime(duration float64)
}
