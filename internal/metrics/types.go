package metrics

import "github.com/prometheus/client_golang/prometheus"

// Match kinds used as the label of MatchesReported.
const (
	MatchKindWin  = "win"
	MatchKindDraw = "draw"
	MatchKindBye  = "bye"
)

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PlayersRegistered    prometheus.Counter
	MatchesReported      *prometheus.CounterVec
	PairingsGenerated    prometheus.Counter
	TournamentsCompleted prometheus.Counter
	PostsAdded           prometheus.Counter
	StandingsDuration    prometheus.Histogram
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	EventsPublished      prometheus.Counter
	EventsFailed         prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
