/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 */

package bot

import (
	"bytes"
	"dwz-bot/api/api"
	"dwz-bot/api/external"
	"dwz-bot/api/i18n"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBot creates a Bot instance with a mock API for testing
func createTestBot(t *testing.T) (*Bot, *api.MockProvider) {
	provider := api.NewMockProvider()
	provider.AddPlayer("Mustermann,Max", api.SampleCard("100", "Mustermann, Max", "SK Musterstadt"))
	provider.AddPlayer("Schulz,Eva", api.SparseCard("300", "Schulz, Eva", ""))
	provider.AddPlayer("Müller,Hans", api.SampleCard("200", "Müller, Hans", "SV Berlin"))
	provider.AddPlayer("Müller,Hans", api.SampleCard("201", "Müller, Hans", "SK Musterstadt"))

	translator, err := i18n.New("en")
	require.NoError(t, err)

	return &Bot{
		BotToken:      "test_token",
		APIPtr:        api.NewMockAPI(provider, api.NewMockStore()),
		Translator:    translator,
		Prefix:        "$",
		MaxCandidates: 10,
		Timeout:       5 * time.Second,
	}, provider
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

func fieldValue(embed *discordgo.MessageEmbed, name string) string {
	for _, field := range embed.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// region helpMessage tests

func TestHelpMessage_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	message := createMockMessage("$help", "user123", "TestUser", "channel123")

	bot.helpMessageHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	msg := mockSession.GetLastMessage()
	assert.Equal(t, "channel123", msg.ChannelID)
	assert.Contains(t, msg.Content, "DWZ Bot")
	assert.Contains(t, msg.Content, "`$dwz <name> [club]`")
	assert.Contains(t, msg.Content, "`$search <name> [club]`")
	assert.Contains(t, msg.Content, "`$stats <name> [club]`")
}

func TestHelpMessage_German(t *testing.T) {
	bot, _ := createTestBot(t)
	translator, err := i18n.New("de")
	require.NoError(t, err)
	bot.Translator = translator
	bot.Prefix = "!"
	mockSession := NewMockDiscordSession()

	bot.helpMessageHandler(mockSession, createMockMessage("!help", "user123", "TestUser", "channel123"))

	assert.Contains(t, mockSession.GetLastMessage().Content, "`!dwz <Name> [Verein]`")
}

// endregion

// region dwz tests

func TestDwz_SendsEmbedWithChart(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	message := createMockMessage(`$dwz "Mustermann, Max"`, "user123", "TestUser", "channel123")

	bot.dwzHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	msg := mockSession.GetLastMessage()
	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]
	assert.Equal(t, "Mustermann, Max", embed.Title)
	assert.Equal(t, "1550", fieldValue(embed, "DWZ"))
	assert.Equal(t, "SK Musterstadt", fieldValue(embed, "Club"))
	assert.Equal(t, "+50", fieldValue(embed, "Net change"))
	assert.Equal(t, "+30", fieldValue(embed, "Best tournament"))
	assert.Equal(t, "+20", fieldValue(embed, "Worst tournament"))
	assert.Equal(t, "7.5", fieldValue(embed, "Points"))
	assert.Equal(t, "68.2%", fieldValue(embed, "Score"))
	assert.Empty(t, fieldValue(embed, "FIDE Elo"))

	require.NotNil(t, embed.Image)
	assert.Equal(t, "attachment://chart.png", embed.Image.URL)
	require.Contains(t, msg.Files, ChartFileName)
	assert.True(t, bytes.HasPrefix(msg.Files[ChartFileName], []byte("\x89PNG")))
}

func TestDwz_NameWithoutQuotes(t *testing.T) {
	bot, provider := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz Mustermann", "user123", "TestUser", "channel123"))

	assert.Equal(t, []string{"Mustermann"}, provider.SearchCalls)
	assert.Contains(t, mockSession.GetLastMessage().Content, "No player found for 'Mustermann'")
}

func TestDwz_UnquotedFullName(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz Max Mustermann", "user123", "TestUser", "channel123"))

	msg := mockSession.GetLastMessage()
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "Mustermann, Max", msg.Embeds[0].Title)
}

func TestDwz_NoChartForSparseHistory(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz \"Eva Schulz\"", "user123", "TestUser", "channel123"))

	msg := mockSession.GetLastMessage()
	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]
	assert.Nil(t, embed.Image)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Not enough rated tournaments for a chart", embed.Footer.Text)
	assert.Empty(t, msg.Files)
	assert.Equal(t, "+20", fieldValue(embed, "Net change"))
	assert.Empty(t, fieldValue(embed, "Club"))
}

func TestDwz_NoStatistics(t *testing.T) {
	bot, provider := createTestBot(t)
	provider.AddPlayer("Neu,Lina", external.PlayerCard{ID: "400", Name: "Neu, Lina", Elo: "1720"})
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz \"Lina Neu\"", "user123", "TestUser", "channel123"))

	embed := mockSession.GetLastMessage().Embeds[0]
	assert.Equal(t, "Not enough rated tournaments for statistics", embed.Description)
	assert.Equal(t, "unrated", fieldValue(embed, "DWZ"))
	assert.Equal(t, "1720", fieldValue(embed, "FIDE Elo"))
	assert.Empty(t, fieldValue(embed, "Net change"))
}

func TestDwz_Usage(t *testing.T) {
	bot, provider := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz", "user123", "TestUser", "channel123"))

	assert.Equal(t, "Usage: `$dwz <name> [club]`", mockSession.GetLastMessage().Content)
	assert.Empty(t, provider.SearchCalls)
}

func TestDwz_NotFound(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz Niemand", "user123", "TestUser", "channel123"))

	assert.Equal(t, "No player found for 'Niemand'", mockSession.GetLastMessage().Content)
}

func TestDwz_Ambiguous(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage(`$dwz "Müller, Hans"`, "user123", "TestUser", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Found 2 players for 'Müller, Hans'")
	assert.Contains(t, content, "- Müller, Hans (SV Berlin), DWZ 1550")
	assert.Contains(t, content, "- Müller, Hans (SK Musterstadt), DWZ 1550")
}

func TestDwz_AmbiguousResolvedByClub(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage(`$dwz "Müller, Hans" Berlin`, "user123", "TestUser", "channel123"))

	msg := mockSession.GetLastMessage()
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "SV Berlin", fieldValue(msg.Embeds[0], "Club"))
}

func TestDwz_ProviderError(t *testing.T) {
	bot, provider := createTestBot(t)
	provider.SearchError = errors.New("connection refused")
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage("$dwz Mustermann", "user123", "TestUser", "channel123"))

	assert.Equal(t, "An error occurred fetching data from the federation. Please try again later", mockSession.GetLastMessage().Content)
}

func TestDwz_UnbalancedQuotes(t *testing.T) {
	bot, provider := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.dwzHandler(mockSession, createMockMessage(`$dwz "Mustermann, Max`, "user123", "TestUser", "channel123"))

	assert.True(t, strings.HasPrefix(mockSession.GetLastMessage().Content, "Could not read the command arguments"))
	assert.Empty(t, provider.SearchCalls)
}

func TestDwz_SessionError(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	mockSession.ErrorToReturn = errors.New("discord unavailable")

	bot.dwzHandler(mockSession, createMockMessage(`$dwz "Mustermann, Max"`, "user123", "TestUser", "channel123"))

	assert.Empty(t, mockSession.SentMessages)
}

// endregion

// region stats tests

func TestStats_NoChartAttached(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.statsHandler(mockSession, createMockMessage(`$stats "Mustermann, Max"`, "user123", "TestUser", "channel123"))

	msg := mockSession.GetLastMessage()
	require.Len(t, msg.Embeds, 1)
	assert.Nil(t, msg.Embeds[0].Image)
	assert.Nil(t, msg.Embeds[0].Footer)
	assert.Empty(t, msg.Files)
	assert.Equal(t, "2", fieldValue(msg.Embeds[0], "Rated tournaments"))
}

// endregion

// region search tests

func TestSearch_ListsCandidates(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.searchHandler(mockSession, createMockMessage(`$search "Hans Müller"`, "user123", "TestUser", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Players matching 'Hans Müller':")
	assert.Contains(t, content, "- Müller, Hans (SV Berlin)")
	assert.Contains(t, content, "- Müller, Hans (SK Musterstadt)")
}

func TestSearch_CapsCandidates(t *testing.T) {
	bot, provider := createTestBot(t)
	bot.MaxCandidates = 3
	for i := 0; i < 5; i++ {
		provider.AddPlayer("Meier", external.PlayerCard{ID: fmt.Sprintf("5%02d", i), Name: fmt.Sprintf("Meier, Player %d", i)})
	}
	mockSession := NewMockDiscordSession()

	bot.searchHandler(mockSession, createMockMessage("$search Meier", "user123", "TestUser", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Meier, Player 2")
	assert.NotContains(t, content, "Meier, Player 3")
	assert.Contains(t, content, "... and 2 more")
}

func TestSearch_NoResults(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.searchHandler(mockSession, createMockMessage("$search Niemand", "user123", "TestUser", "channel123"))

	assert.Equal(t, "No player found for 'Niemand'", mockSession.GetLastMessage().Content)
}

func TestSearch_Usage(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.searchHandler(mockSession, createMockMessage("$search", "user123", "TestUser", "channel123"))

	assert.Equal(t, "Usage: `$search <name> [club]`", mockSession.GetLastMessage().Content)
}

// endregion

// region newMessage routing tests

func TestNewMessage_IgnoresOwnMessages(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("$help", "bot123", "DWZBot", "channel123"), "bot123")

	assert.Empty(t, mockSession.SentMessages)
}

func TestNewMessage_Routes(t *testing.T) {
	tests := []struct {
		content  string
		contains string
	}{
		{"$help", "DWZ Bot"},
		{"$dwz", "Usage: `$dwz"},
		{"$stats", "Usage: `$stats"},
		{"$search", "Usage: `$search"},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			bot, _ := createTestBot(t)
			mockSession := NewMockDiscordSession()

			bot.newMessageHandler(mockSession, createMockMessage(tt.content, "user123", "TestUser", "channel123"), "bot123")

			require.Len(t, mockSession.SentMessages, 1)
			assert.Contains(t, mockSession.GetLastMessage().Content, tt.contains)
		})
	}
}

func TestNewMessage_UnknownCommand(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("$leaderboard", "user123", "TestUser", "channel123"), "bot123")
	bot.newMessageHandler(mockSession, createMockMessage("hello $dwz", "user123", "TestUser", "channel123"), "bot123")

	assert.Empty(t, mockSession.SentMessages)
}

// endregion
