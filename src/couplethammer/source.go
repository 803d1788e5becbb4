package couplethammer

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kalexmills/couplet-hammer/src/poem"
)

// maxMessagesPerPage is the most messages Discord returns for one history request.
const maxMessagesPerPage = 100

// ChannelSource reads candidate lines from the recent history of a Discord channel.
type ChannelSource struct {
	Session   *discordgo.Session
	ChannelID string
	// BeforeID is the request message; only older messages are read.
	BeforeID string
	Limit    int
	MaxChars int
}

func (c *ChannelSource) Fetch(ctx context.Context, query string) (map[string][]string, error) {
	var messages []*discordgo.Message
	before := c.BeforeID
	for len(messages) < c.Limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := c.Session.ChannelMessages(c.ChannelID, min(maxMessagesPerPage, c.Limit-len(messages)), before, "", "")
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		messages = append(messages, page...)
		before = page[len(page)-1].ID
	}
	return SequencesFromMessages(messages, c.BeforeID, query, c.MaxChars), nil
}

// SequencesFromMessages turns channel messages into candidate lines keyed by message ID.
// Messages from bots, commands, the request itself and messages not containing query
// are skipped, as are repeats of a message already seen.
func SequencesFromMessages(messages []*discordgo.Message, requestID string, query string, maxChars int) map[string][]string {
	query = strings.ToLower(query)
	seen := make(map[[16]byte]struct{})
	result := make(map[string][]string)
	for _, m := range messages {
		if m == nil || m.ID == requestID || (m.Author != nil && m.Author.Bot) {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" || strings.HasPrefix(content, commandPrefix) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(content), query) {
			continue
		}
		hash := DuplicateHash(content)
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		result[m.ID] = strings.Fields(content)
	}
	return poem.CleanSequences(result, maxChars)
}
