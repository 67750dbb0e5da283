package director

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-forum/internal/forum"
	"github.com/mauv0809/swiss-forum/internal/metrics"
	"github.com/mauv0809/swiss-forum/internal/pubsub"
	"github.com/mauv0809/swiss-forum/internal/tournament"
)

// New creates a new Director.
func New(store Store, posts Posts, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Director {
	return &Director{
		store:    store,
		posts:    posts,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// publish sends an event. Failures are logged and counted but never surface to the caller.
func (d *Director) publish(topic pubsub.EventType, data any, dryRun bool) {
	if dryRun {
		log.Debug("[Dry Run] Skipping event", "topic", topic)
		return
	}
	if err := d.pubsub.SendMessage(topic, data); err != nil {
		d.metrics.IncEventsFailed()
		log.Error("Failed to publish event", "topic", topic, "error", err)
		return
	}
	d.metrics.IncEventsPublished()
}

func (d *Director) RegisterPlayer(ctx context.Context, name string) (*tournament.Player, error) {
	player, err := d.store.RegisterPlayer(ctx, name)
	if err != nil {
		return nil, err
	}
	d.metrics.IncPlayersRegistered()
	d.publish(pubsub.EventPlayerRegistered, PlayerRegistered{ID: player.ID, Name: player.Name}, false)
	return player, nil
}

func (d *Director) GetPlayer(ctx context.Context, id int64) (*tournament.Player, error) {
	return d.store.GetPlayer(ctx, id)
}

func (d *Director) CountPlayers(ctx context.Context, tag string) (int, error) {
	return d.store.CountPlayers(ctx, tag)
}

func matchKind(m *tournament.Match) string {
	switch {
	case m.Bye:
		return metrics.MatchKindBye
	case m.Draw:
		return metrics.MatchKindDraw
	default:
		return metrics.MatchKindWin
	}
}

func (d *Director) ReportMatch(ctx context.Context, report tournament.MatchReport) (*tournament.Match, error) {
	match, err := d.store.ReportMatch(ctx, report)
	if err != nil {
		return nil, err
	}
	kind := matchKind(match)
	d.metrics.IncMatchesReported(kind)
	d.publish(pubsub.EventMatchReported, MatchReported{
		MatchID:  match.ID,
		WinnerID: match.Winner,
		LoserID:  match.Loser,
		Kind:     kind,
	}, false)
	return match, nil
}

func (d *Director) PlayerStandings(ctx context.Context, tag string) ([]tournament.Standing, error) {
	start := time.Now()
	standings, err := d.store.PlayerStandings(ctx, tag)
	if err != nil {
		return nil, err
	}
	d.metrics.ObserveStandingsDuration(time.Since(start).Seconds())
	return standings, nil
}

// SwissPairings computes the next round and announces it unless dryRun is set.
func (d *Director) SwissPairings(ctx context.Context, tag string, dryRun bool) ([]tournament.Pairing, error) {
	pairings, err := d.store.SwissPairings(ctx, tag)
	if err != nil {
		return nil, err
	}
	log.Info("Pairings generated", "tournament", tag, "count", len(pairings))
	d.metrics.IncPairingsGenerated()
	if len(pairings) > 0 {
		if err := d.notifier.SendPairings(tag, pairings, dryRun); err != nil {
			log.Error("Failed to send pairings notification", "error", err)
		}
	}
	return pairings, nil
}

func (d *Director) DeleteMatches(ctx context.Context, tag string) error {
	return d.store.DeleteMatches(ctx, tag)
}

func (d *Director) DeletePlayers(ctx context.Context, tag string) error {
	return d.store.DeletePlayers(ctx, tag)
}

// CompleteTournament archives the current tournament under tag.
func (d *Director) CompleteTournament(ctx context.Context, tag string, dryRun bool) (*tournament.Archive, error) {
	archive, err := d.store.CompleteTournament(ctx, tag)
	if err != nil {
		return nil, err
	}
	d.metrics.IncTournamentsCompleted()

	event := TournamentCompleted{
		Tag:         archive.Tag,
		CompletedAt: archive.CompletedAt,
		PlayerCount: archive.PlayerCount,
		MatchCount:  archive.MatchCount,
	}
	if len(archive.Standings) > 0 {
		event.WinnerID = archive.Standings[0].ID
		event.WinnerName = archive.Standings[0].Name
	}
	d.publish(pubsub.EventTournamentCompleted, event, dryRun)

	if err := d.notifier.SendTournamentCompleted(archive, dryRun); err != nil {
		log.Error("Failed to send tournament completed notification", "tag", archive.Tag, "error", err)
	}
	return archive, nil
}

func (d *Director) GetArchive(ctx context.Context, tag string) (*tournament.Archive, error) {
	return d.store.GetArchive(ctx, tag)
}

func (d *Director) ListArchives(ctx context.Context) ([]tournament.Archive, error) {
	return d.store.ListArchives(ctx)
}

func (d *Director) AddPost(ctx context.Context, content string) (*forum.Post, error) {
	post, err := d.posts.AddPost(ctx, content)
	if err != nil {
		return nil, err
	}
	log.Debug("Post added", "id", post.ID)
	d.metrics.IncPostsAdded()
	d.publish(pubsub.EventPostAdded, PostAdded{ID: post.ID, Time: post.Time}, false)
	return post, nil
}

func (d *Director) GetAllPosts(ctx context.Context) ([]forum.Post, error) {
	return d.posts.GetAllPosts(ctx)
}
