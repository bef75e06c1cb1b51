/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 */

package bot

import (
	"bytes"
	"context"
	"dwz-bot/api/api"
	"dwz-bot/api/external"
	"dwz-bot/api/logic"
	"dwz-bot/api/shared"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ChartFileName is the name of the chart attachment referenced by the player embed
const ChartFileName = "chart.png"

const embedColour = 0x1f77b4

// helpMessageHandler handles the help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	t := b.Translator
	var res strings.Builder
	res.WriteString(t.T("help.title") + "\n")
	for _, key := range []string{"help.dwz", "help.search", "help.stats", "help.help"} {
		res.WriteString(t.T(key, b.Prefix) + "\n")
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// dwzHandler handles the dwz command: player details, statistics and the rating chart
func (b *Bot) dwzHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.playerHandler(session, message, "usage.dwz", true)
}

// statsHandler handles the stats command: player details and statistics without the chart
func (b *Bot) statsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.playerHandler(session, message, "usage.stats", false)
}

// playerHandler looks up the player named in the message and sends their report as an embed
// Preconditions: Receives the session, the message and whether the chart should be attached
// Postconditions: Sends the report, or a usage, not found, candidate list or error message to the channel
func (b *Bot) playerHandler(session DiscordSession, message *discordgo.MessageCreate, usageKey string, withChart bool) {
	query, ok := b.parseQuery(session, message, usageKey)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	report, err := b.APIPtr.LookupPlayer(ctx, query)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.lookupErrorMessage(query, err))
		return
	}

	send := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{b.playerEmbed(report, withChart)}}
	if withChart && report.HasChart() {
		send.Files = []*discordgo.File{{
			Name:        ChartFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(report.Chart),
		}}
	}
	if _, err := session.ChannelMessageSendComplex(message.ChannelID, send); err != nil {
		log.Printf("error sending report for player %s: %v\n", report.Player.ID, err)
	}
}

// searchHandler handles the search command with a DiscordSession interface
func (b *Bot) searchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	query, ok := b.parseQuery(session, message, "usage.search")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	candidates, err := b.APIPtr.SearchPlayers(ctx, query)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, b.Translator.T("error.unexpected"))
		return
	}
	if len(candidates) == 0 {
		session.ChannelMessageSend(message.ChannelID, b.Translator.T("error.not_found", query.Name))
		return
	}

	var res strings.Builder
	res.WriteString(b.Translator.T("search.title", query.Name) + "\n")
	b.writeCandidates(&res, candidates)
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	switch {
	case b.isCommand(message.Content, "help"):
		b.helpMessageHandler(session, message)

	case b.isCommand(message.Content, "dwz"):
		b.dwzHandler(session, message)

	case b.isCommand(message.Content, "stats"):
		b.statsHandler(session, message)

	case b.isCommand(message.Content, "search"):
		b.searchHandler(session, message)
	}
}

// parseQuery reads the player query from the command arguments. If the arguments are unusable the reason is sent to
// the channel and ok is false.
func (b *Bot) parseQuery(session DiscordSession, message *discordgo.MessageCreate, usageKey string) (shared.Query, bool) {
	args, err := logic.ParseCommandArgs(message.Content)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.Translator.T("error.arguments", err))
		return shared.Query{}, false
	}
	query := shared.NewQuery(args)
	if query.IsEmpty() {
		session.ChannelMessageSend(message.ChannelID, b.Translator.T(usageKey, b.Prefix))
		return shared.Query{}, false
	}
	return query, true
}

// lookupErrorMessage converts a lookup error into the message shown to the user. Unexpected errors are logged.
func (b *Bot) lookupErrorMessage(query shared.Query, err error) string {
	var ambiguous *api.AmbiguousPlayerError
	switch {
	case errors.Is(err, api.ErrPlayerNotFound):
		return b.Translator.T("error.not_found", query.Name)
	case errors.As(err, &ambiguous):
		var res strings.Builder
		res.WriteString(b.Translator.T("error.ambiguous", len(ambiguous.Candidates), query.Name) + "\n")
		b.writeCandidates(&res, ambiguous.Candidates)
		return res.String()
	default:
		log.Println(err)
		return b.Translator.T("error.unexpected")
	}
}

// writeCandidates writes up to MaxCandidates players as a list, followed by the number of players left out
func (b *Bot) writeCandidates(res *strings.Builder, candidates []external.PlayerSummary) {
	shown := candidates
	if b.MaxCandidates > 0 && len(shown) > b.MaxCandidates {
		shown = shown[:b.MaxCandidates]
	}
	for _, candidate := range shown {
		res.WriteString(b.candidateLine(candidate) + "\n")
	}
	if hidden := len(candidates) - len(shown); hidden > 0 {
		res.WriteString(b.Translator.T("error.more_candidates", hidden) + "\n")
	}
}

func (b *Bot) candidateLine(candidate external.PlayerSummary) string {
	line := "- " + candidate.Name
	if candidate.Club != "" {
		line += " (" + candidate.Club + ")"
	}
	return line + ", " + b.Translator.T("player.dwz") + " " + b.ratingText(candidate.DWZ)
}

// playerEmbed builds the embed shown for a player report. The chart image refers to the attachment sent with it.
func (b *Bot) playerEmbed(report *api.PlayerReport, withChart bool) *discordgo.MessageEmbed {
	t := b.Translator
	player := report.Player

	dwz := b.ratingText(player.DWZ)
	if player.DWZIndex != "" && dwz != t.T("player.no_rating") {
		dwz += "-" + player.DWZIndex
	}
	embed := &discordgo.MessageEmbed{
		Title: player.Name,
		Color: embedColour,
		Fields: []*discordgo.MessageEmbedField{
			{Name: t.T("player.dwz"), Value: dwz, Inline: true},
		},
	}
	if player.Club != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: t.T("player.club"), Value: player.Club, Inline: true})
	}
	if player.Elo != "" && player.Elo != "0" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: t.T("player.elo"), Value: player.Elo, Inline: true})
	}

	if stats := report.Statistics; stats != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: t.T("stats.starting"), Value: strconv.Itoa(stats.StartingRating), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.current"), Value: strconv.Itoa(stats.CurrentRating), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.net_change"), Value: fmt.Sprintf("%+d", stats.NetChange), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.best_gain"), Value: fmt.Sprintf("%+d", stats.BestGain), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.worst_loss"), Value: fmt.Sprintf("%+d", stats.WorstLoss), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.tournaments"), Value: strconv.Itoa(stats.TournamentCount), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.games"), Value: strconv.Itoa(stats.TotalGames), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.points"), Value: strconv.FormatFloat(stats.TotalPoints, 'f', -1, 64), Inline: true},
			&discordgo.MessageEmbedField{Name: t.T("stats.score"), Value: fmt.Sprintf("%.1f%%", stats.AverageScorePercent), Inline: true},
		)
	} else {
		embed.Description = t.T("stats.none")
	}

	if withChart {
		if report.HasChart() {
			embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + ChartFileName}
		} else {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: t.T("chart.none")}
		}
	}
	return embed
}

func (b *Bot) ratingText(dwz string) string {
	if dwz == "" || dwz == "0" {
		return b.Translator.T("player.no_rating")
	}
	return dwz
}
