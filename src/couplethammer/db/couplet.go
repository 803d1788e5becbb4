package db

import (
	"context"

	"github.com/jonbodner/proteus"
)

// Couplet is a composed couplet, keyed by the request message it answered.
type Couplet struct {
	GuildID       int64   `prof:"guild_id"`
	ChannelID     int64   `prof:"channel_id"`
	MessageID     int64   `prof:"message_id"`
	AuthorMention string  `prof:"author_mention"`
	Query         string  `prof:"query"`
	Line1         string  `prof:"line1"`
	Line2         string  `prof:"line2"`
	Cost          float64 `prof:"cost"`
	Strategy      string  `prof:"strategy"`
}

var CoupletDAO CoupletDaoImpl

type CoupletDaoImpl struct {
	Upsert func(ctx context.Context, e proteus.ContextExecutor, c Couplet) (int64, error)            `proq:"q:upsert" prop:"c"`
	Random func(ctx context.Context, e proteus.ContextQuerier, guildID int64) (Couplet, error)       `proq:"q:random" prop:"guildID"`
	// FindByID is only intended for testing
	FindByID func(ctx context.Context, e proteus.ContextQuerier, messageID int64) (Couplet, error) `proq:"q:findByID" prop:"messageID"`
}

func init() {
	m := proteus.MapMapper{
		"upsert": `INSERT INTO couplet (guild_id, channel_id, message_id, author_mention, query, line1, line2, cost, strategy)
				   VALUES (:c.GuildID:, :c.ChannelID:, :c.MessageID:, :c.AuthorMention:, :c.Query:, :c.Line1:, :c.Line2:, :c.Cost:, :c.Strategy:)
				   ON CONFLICT(guild_id, channel_id, message_id)
				   DO UPDATE SET line1 = excluded.line1, line2 = excluded.line2, cost = excluded.cost, strategy = excluded.strategy`,
		"findByID": `SELECT * FROM couplet WHERE message_id = :messageID:`,
		"random":   `SELECT * FROM couplet WHERE guild_id = :guildID: ORDER BY RANDOM() LIMIT 1`,
	}
	err := proteus.ShouldBuild(context.Background(), &CoupletDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
