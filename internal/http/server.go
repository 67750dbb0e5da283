package http

import (
	"net/http"

	"github.com/mauv0809/swiss-forum/internal/config"
	"github.com/mauv0809/swiss-forum/internal/director"
	"github.com/mauv0809/swiss-forum/internal/metrics"
)

func NewServer(director *director.Director, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Director:       director,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /players", Chain(s.RegisterPlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/count", Chain(s.CountPlayersHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}", Chain(s.GetPlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players", Chain(s.DeletePlayersHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.ReportMatchHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches", Chain(s.DeleteMatchesHandler(), paramsMiddleware))

	s.Router.Handle("GET /standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("GET /pairings", Chain(s.PairingsHandler(), paramsMiddleware))

	s.Router.Handle("POST /tournaments/{tag}/complete", Chain(s.CompleteTournamentHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{tag}", Chain(s.GetTournamentHandler(), paramsMiddleware))

	s.Router.Handle("GET /posts", Chain(s.ListPostsHandler(), paramsMiddleware))
	s.Router.Handle("POST /posts", Chain(s.AddPostHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/tournament-completed", Chain(s.TournamentCompletedPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
