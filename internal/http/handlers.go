package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-forum/internal/director"
	"github.com/mauv0809/swiss-forum/internal/pubsub"
	"github.com/mauv0809/swiss-forum/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		player, err := s.Director.RegisterPlayer(r.Context(), req.Name)
		if err != nil {
			writeError(w, "Failed to register player", err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) CountPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tournament")
		count, err := s.Director.CountPlayers(r.Context(), tag)
		if err != nil {
			writeError(w, "Failed to count players", err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Tournament: tag, Count: count})
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid player id", http.StatusBadRequest)
			return
		}
		player, err := s.Director.GetPlayer(r.Context(), id)
		if err != nil {
			writeError(w, "Failed to get player", err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tournament")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have deleted players", "tournament", tag)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Director.DeletePlayers(r.Context(), tag); err != nil {
			writeError(w, "Failed to delete players", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReportMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report tournament.MatchReport
		if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
			log.Error("Failed to decode match report", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		match, err := s.Director.ReportMatch(r.Context(), report)
		if err != nil {
			writeError(w, "Failed to report match", err)
			return
		}
		writeJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) DeleteMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tournament")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have deleted matches", "tournament", tag)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Director.DeleteMatches(r.Context(), tag); err != nil {
			writeError(w, "Failed to delete matches", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Director.PlayerStandings(r.Context(), r.URL.Query().Get("tournament"))
		if err != nil {
			writeError(w, "Failed to get standings", err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) PairingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pairings, err := s.Director.SwissPairings(r.Context(), r.URL.Query().Get("tournament"), isDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to generate pairings", err)
			return
		}
		writeJSON(w, http.StatusOK, pairings)
	}
}

func (s *Server) CompleteTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archive, err := s.Director.CompleteTournament(r.Context(), r.PathValue("tag"), isDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to complete tournament", err)
			return
		}
		writeJSON(w, http.StatusCreated, archive)
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archives, err := s.Director.ListArchives(r.Context())
		if err != nil {
			writeError(w, "Failed to list tournaments", err)
			return
		}
		writeJSON(w, http.StatusOK, archives)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archive, err := s.Director.GetArchive(r.Context(), r.PathValue("tag"))
		if err != nil {
			writeError(w, "Failed to get tournament", err)
			return
		}
		writeJSON(w, http.StatusOK, archive)
	}
}

func (s *Server) ListPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := s.Director.GetAllPosts(r.Context())
		if err != nil {
			writeError(w, "Failed to get posts", err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
	}
}

func (s *Server) AddPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode post", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		post, err := s.Director.AddPost(r.Context(), req.Content)
		if err != nil {
			writeError(w, "Failed to add post", err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// TournamentCompletedPushHandler receives tournament-completed events from a
// push subscription and announces the result on the forum.
func (s *Server) TournamentCompletedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg pushMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		log.Debug("Received push message", "subscription", msg.Subscription)

		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event director.TournamentCompleted
		topic, err := pubsub.Decode(rawData, &event)
		if err != nil {
			log.Error("Failed to decode event", "error", err)
			http.Error(w, "Invalid event", http.StatusBadRequest)
			return
		}
		if topic != pubsub.EventTournamentCompleted {
			// Acknowledge so the subscription does not redeliver it.
			log.Warn("Ignoring unexpected event", "type", topic)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		content := fmt.Sprintf("%s is over after %d matches between %d players.", event.Tag, event.MatchCount, event.PlayerCount)
		if event.WinnerName != "" {
			content = fmt.Sprintf("%s is over. Congratulations %s! (%d players, %d matches)", event.Tag, event.WinnerName, event.PlayerCount, event.MatchCount)
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have posted", "content", content)
			w.Write([]byte("OK"))
			return
		}
		if _, err := s.Director.AddPost(r.Context(), content); err != nil {
			writeError(w, "Failed to post tournament result", err)
			return
		}
		w.Write([]byte("OK"))
	}
}
