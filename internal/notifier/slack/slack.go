package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-forum/internal/metrics"
	"github.com/mauv0809/swiss-forum/internal/notifier"
	"github.com/mauv0809/swiss-forum/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendPairings(tag string, pairings []tournament.Pairing, dryRun bool) error {
	msg := formatPairings(tag, pairings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendTournamentCompleted(archive *tournament.Archive, dryRun bool) error {
	msg := formatTournamentCompleted(archive)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func tournamentName(tag string) string {
	if tag == "" {
		return "current tournament"
	}
	return tag
}

// formatPairings creates the Slack message announcing the next round.
func formatPairings(tag string, pairings []tournament.Pairing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf(":crossed_swords: Next round: %s", tournamentName(tag)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(pairings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	var byeText string
	for i, p := range pairings {
		if p.IsBye() {
			byeText = fmt.Sprintf(":zzz: %s has a bye this round.", p.Name1)
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s vs %s", i+1, p.Name1, p.Name2))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}
	if byeText != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", byeText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTournamentCompleted creates the Slack message with the final standings.
func formatTournamentCompleted(archive *tournament.Archive) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf(":trophy: %s is complete! :trophy:", archive.Tag), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	summary := fmt.Sprintf("%d players, %d matches.", archive.PlayerCount, archive.MatchCount)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", summary, true, false), nil, nil))

	if len(archive.Standings) == 0 {
		return slack.NewBlockMessage(blocks...)
	}

	var rows []string
	for i, st := range archive.Standings {
		var medal string
		switch i {
		case 0:
			medal = ":first_place_medal: "
		case 1:
			medal = ":second_place_medal: "
		case 2:
			medal = ":third_place_medal: "
		}
		rows = append(rows, fmt.Sprintf("%d. %s%s: %d pts (%d played, tie-break %d)",
			i+1, medal, st.Name, st.Points, st.MatchesPlayed, st.TieBreak))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(rows, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
