package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/swiss-forum/internal/metrics"
	"github.com/mauv0809/swiss-forum/internal/tournament"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sectionTexts(msg slackapi.Message) []string {
	var texts []string
	for _, block := range msg.Blocks.BlockSet {
		switch b := block.(type) {
		case *slackapi.HeaderBlock:
			texts = append(texts, b.Text.Text)
		case *slackapi.SectionBlock:
			texts = append(texts, b.Text.Text)
		case *slackapi.ContextBlock:
			for _, el := range b.ContextElements.Elements {
				if txt, ok := el.(*slackapi.TextBlockObject); ok {
					texts = append(texts, txt.Text)
				}
			}
		}
	}
	return texts
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	err := notifier.SendPairings("", []tournament.Pairing{{ID1: 1, Name1: "A", ID2: 2, Name2: "B"}}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendTournamentCompleted(&tournament.Archive{Tag: "Spring Open"}, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendPairings("Spring Open", nil, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatPairings(t *testing.T) {
	pairings := []tournament.Pairing{
		{ID1: 1, Name1: "Ann", ID2: 2, Name2: "Bob"},
		{ID1: 3, Name1: "Cy", ID2: 3, Name2: "Cy"},
	}

	texts := sectionTexts(formatPairings("", pairings))
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "current tournament")
	assert.Equal(t, "1. Ann vs Bob", texts[1])
	assert.Contains(t, texts[2], "Cy has a bye")
}

func TestFormatPairings_Empty(t *testing.T) {
	texts := sectionTexts(formatPairings("Spring Open", nil))
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Spring Open")
	assert.Equal(t, "No players registered yet.", texts[1])
}

func TestFormatTournamentCompleted(t *testing.T) {
	archive := &tournament.Archive{
		Tag:         "Spring Open",
		PlayerCount: 2,
		MatchCount:  1,
		Standings: []tournament.Standing{
			{ID: 1, Name: "Ann", Points: 2, MatchesPlayed: 1},
			{ID: 2, Name: "Bob", Points: 0, MatchesPlayed: 1},
		},
	}

	texts := sectionTexts(formatTournamentCompleted(archive))
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Spring Open is complete")
	assert.Equal(t, "2 players, 1 matches.", texts[1])
	assert.Contains(t, texts[2], "1. :first_place_medal: Ann: 2 pts")
	assert.Contains(t, texts[2], "2. :second_place_medal: Bob: 0 pts")
}
