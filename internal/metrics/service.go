package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_players_registered_total",
			Help: "The total number of players registered.",
		}),
		MatchesReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swiss_matches_reported_total",
			Help: "The total number of matches reported, by kind.",
		}, []string{"kind"}),
		PairingsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_pairings_generated_total",
			Help: "The total number of times swiss pairings were generated.",
		}),
		TournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_tournaments_completed_total",
			Help: "The total number of tournaments archived.",
		}),
		PostsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forum_posts_added_total",
			Help: "The total number of forum posts added.",
		}),
		StandingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiss_standings_duration_seconds",
			Help:    "The duration of standings computations.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_events_published_total",
			Help: "The total number of domain events published.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_events_failed_total",
			Help: "The total number of domain events that failed to publish.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "swiss_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersRegistered,
		s.MatchesReported,
		s.PairingsGenerated,
		s.TournamentsCompleted,
		s.PostsAdded,
		s.StandingsDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersRegistered() {
	s.PlayersRegistered.Inc()
}

func (s *Service) IncMatchesReported(kind string) {
	s.MatchesReported.WithLabelValues(kind).Inc()
}

func (s *Service) IncPairingsGenerated() {
	s.PairingsGenerated.Inc()
}

func (s *Service) IncTournamentsCompleted() {
	s.TournamentsCompleted.Inc()
}

func (s *Service) IncPostsAdded() {
	s.PostsAdded.Inc()
}

func (s *Service) ObserveStandingsDuration(duration float64) {
	s.StandingsDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
