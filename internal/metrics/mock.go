package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	playersRegistered    int
	matchesReported      map[string]int
	pairingsGenerated    int
	tournamentsCompleted int
	postsAdded           int
	standingsDurations   []float64
	slackNotifSent       int
	slackNotifFailed     int
	eventsPublished      int
	eventsFailed         int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchesReported:    make(map[string]int),
		standingsDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRegistered++
}

func (m *Mock) IncMatchesReported(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesReported[kind]++
}

func (m *Mock) IncPairingsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingsGenerated++
}

func (m *Mock) IncTournamentsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsCompleted++
}

func (m *Mock) IncPostsAdded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postsAdded++
}

func (m *Mock) ObserveStandingsDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsDurations = append(m.standingsDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayersRegistered returns the number of times IncPlayersRegistered was called.
func (m *Mock) PlayersRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRegistered
}

// MatchesReported returns how many matches of kind were counted.
func (m *Mock) MatchesReported(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesReported[kind]
}

func (m *Mock) PairingsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingsGenerated
}

func (m *Mock) TournamentsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsCompleted
}

func (m *Mock) PostsAdded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.postsAdded
}

// StandingsObservations returns the number of recorded standings durations.
func (m *Mock) StandingsObservations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.standingsDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}
