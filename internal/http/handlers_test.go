package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/mauv0809/swiss-forum/internal/config"
	"github.com/mauv0809/swiss-forum/internal/database"
	"github.com/mauv0809/swiss-forum/internal/director"
	"github.com/mauv0809/swiss-forum/internal/forum"
	"github.com/mauv0809/swiss-forum/internal/metrics"
	"github.com/mauv0809/swiss-forum/internal/notifier"
	"github.com/mauv0809/swiss-forum/internal/pubsub"
	"github.com/mauv0809/swiss-forum/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	notif  *notifier.Mock
	pubsub *pubsub.MockPubSubClient
}

// setupTestServer initializes a new server with an in-memory database and mock clients.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	notif := notifier.NewMock()
	ps := pubsub.NewMock()
	d := director.New(tournament.New(db), forum.NewStore(db), notif, metricsSvc, ps)

	return &testServer{
		Server: NewServer(d, metricsSvc, metricsHandler, config.Config{}),
		notif:  notif,
		pubsub: ps,
	}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) register(t *testing.T, name string) tournament.Player {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/players", registerPlayerRequest{Name: name})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var p tournament.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestMetricsHandler(t *testing.T) {
	server := setupTestServer(t)
	server.register(t, "Ann")

	rr := server.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "swiss_players_registered_total 1")
}

func TestPlayersHandlers(t *testing.T) {
	server := setupTestServer(t)

	ann := server.register(t, "Ann")
	server.register(t, "Bob")

	t.Run("count", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/players/count", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var resp countResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("get", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/players/"+strconv.FormatInt(ann.ID, 10), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var p tournament.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		assert.Equal(t, "Ann", p.Name)
	})

	t.Run("get unknown is 404", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/players/999", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("get with bad id is 400", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/players/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty name is 400", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/players", registerPlayerRequest{Name: " "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), tournament.ErrInvalidName.Error())
	})

	t.Run("invalid json is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete dry run keeps players", func(t *testing.T) {
		rr := server.do(t, http.MethodDelete, "/players?dry_run=true", nil)
		require.Equal(t, http.StatusNoContent, rr.Code)
		rr = server.do(t, http.MethodGet, "/players/count", nil)
		assert.Contains(t, rr.Body.String(), `"count":2`)
	})

	t.Run("delete", func(t *testing.T) {
		rr := server.do(t, http.MethodDelete, "/players", nil)
		require.Equal(t, http.StatusNoContent, rr.Code)
		rr = server.do(t, http.MethodGet, "/players/count", nil)
		assert.Contains(t, rr.Body.String(), `"count":0`)
	})
}

func TestMatchesAndStandings(t *testing.T) {
	server := setupTestServer(t)
	a := server.register(t, "A")
	b := server.register(t, "B")
	c := server.register(t, "C")

	rr := server.do(t, http.MethodPost, "/matches", tournament.MatchReport{WinnerID: b.ID, LoserID: a.ID})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = server.do(t, http.MethodPost, "/matches", tournament.MatchReport{WinnerID: c.ID, LoserID: c.ID, Bye: true})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	t.Run("second bye conflicts", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/matches", tournament.MatchReport{WinnerID: c.ID, LoserID: c.ID, Bye: true})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("self match is 400", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/matches", tournament.MatchReport{WinnerID: a.ID, LoserID: a.ID})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown player is 404", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/matches", tournament.MatchReport{WinnerID: a.ID, LoserID: 999})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("standings", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/standings", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var standings []tournament.Standing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
		require.Len(t, standings, 3)
		assert.Equal(t, 2, standings[0].Points)
		assert.Equal(t, 2, standings[1].Points)
		assert.Equal(t, a.ID, standings[2].ID)
	})

	t.Run("pairings dry run", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/pairings?dry_run=true", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var pairings []tournament.Pairing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pairings))
		require.Len(t, pairings, 2)
		assert.True(t, pairings[1].IsBye())
		assert.Equal(t, a.ID, pairings[1].ID1, "only A has no bye and is lowest ranked")
		require.Len(t, server.notif.SendPairingsCalls, 1)
		assert.True(t, server.notif.SendPairingsCalls[0].DryRun)
	})

	t.Run("delete matches", func(t *testing.T) {
		rr := server.do(t, http.MethodDelete, "/matches", nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestTournamentHandlers(t *testing.T) {
	server := setupTestServer(t)
	a := server.register(t, "A")
	b := server.register(t, "B")
	rr := server.do(t, http.MethodPost, "/matches", tournament.MatchReport{WinnerID: a.ID, LoserID: b.ID})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = server.do(t, http.MethodPost, "/tournaments/spring/complete", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var archive tournament.Archive
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &archive))
	assert.Equal(t, "spring", archive.Tag)
	assert.Equal(t, 2, archive.PlayerCount)
	assert.Equal(t, 1, archive.MatchCount)
	require.Len(t, server.notif.SendTournamentCompletedCalls, 1)

	t.Run("duplicate tag conflicts", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/tournaments/spring/complete", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("archived count", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/players/count?tournament=spring", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"count":2`)
		rr = server.do(t, http.MethodGet, "/players/count", nil)
		assert.Contains(t, rr.Body.String(), `"count":0`)
	})

	t.Run("get and list", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/tournaments/spring", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var got tournament.Archive
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Standings, 2)
		assert.Equal(t, a.ID, got.Standings[0].ID)

		rr = server.do(t, http.MethodGet, "/tournaments", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var list []tournament.Archive
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("unknown tag is 404", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, "/tournaments/winter", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPostsHandlers(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, http.MethodPost, "/posts", addPostRequest{Content: "first"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = server.do(t, http.MethodPost, "/posts", addPostRequest{Content: "'; DROP TABLE posts; --"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = server.do(t, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var posts []forum.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	contents := []string{posts[0].Content, posts[1].Content}
	assert.ElementsMatch(t, []string{"first", "'; DROP TABLE posts; --"}, contents)

	rr = server.do(t, http.MethodPost, "/posts", addPostRequest{Content: ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTournamentCompletedPushHandler(t *testing.T) {
	server := setupTestServer(t)

	push := func(t *testing.T, topic pubsub.EventType, payload any) *httptest.ResponseRecorder {
		data, err := pubsub.Encode(topic, payload)
		require.NoError(t, err)
		var msg pushMessage
		msg.Subscription = "projects/test/subscriptions/forum"
		msg.Message.Data = base64.StdEncoding.EncodeToString(data)
		return server.do(t, http.MethodPost, "/pubsub/tournament-completed", msg)
	}

	t.Run("posts the winner", func(t *testing.T) {
		rr := push(t, pubsub.EventTournamentCompleted, director.TournamentCompleted{
			Tag: "spring", PlayerCount: 8, MatchCount: 12, WinnerID: 1, WinnerName: "Ann",
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		posts, err := server.Director.GetAllPosts(t.Context())
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Contains(t, posts[0].Content, "Congratulations Ann")
	})

	t.Run("ignores other events", func(t *testing.T) {
		rr := push(t, pubsub.EventPostAdded, director.PostAdded{ID: "x"})
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("rejects bad base64", func(t *testing.T) {
		var msg pushMessage
		msg.Message.Data = "not base64!"
		rr := server.do(t, http.MethodPost, "/pubsub/tournament-completed", msg)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
