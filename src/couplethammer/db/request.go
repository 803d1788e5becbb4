package db

import (
	"context"

	"github.com/jonbodner/proteus"
)

// Request statuses.
const (
	StatusComposed = "composed"
	StatusFailed   = "failed"
	StatusBadQuery = "bad_query"
	StatusRandom   = "random"
)

// Request is a mention the bot has already answered.
type Request struct {
	MessageID int64  `prof:"message_id"`
	GuildID   int64  `prof:"guild_id"`
	ChannelID int64  `prof:"channel_id"`
	Status    string `prof:"status"`
}

var RequestDAO RequestDaoImpl

type RequestDaoImpl struct {
	Upsert func(ctx context.Context, e proteus.ContextExecutor, r Request) (int64, error) `proq:"q:upsert" prop:"r"`
	// FindByID returns a zero Request when messageID was never processed.
	FindByID func(ctx context.Context, e proteus.ContextQuerier, messageID int64) (Request, error) `proq:"q:findByID" prop:"messageID"`
}

// IsProcessed reports whether a request with messageID was already answered.
func IsProcessed(ctx context.Context, e proteus.ContextQuerier, messageID int64) (bool, error) {
	r, err := RequestDAO.FindByID(ctx, e, messageID)
	if err != nil {
		return false, err
	}
	return r.MessageID != 0, nil
}

func init() {
	m := proteus.MapMapper{
		"upsert": `INSERT INTO request (message_id, guild_id, channel_id, status)
				   VALUES (:r.MessageID:, :r.GuildID:, :r.ChannelID:, :r.Status:)
				   ON CONFLICT(message_id)
				   DO UPDATE SET status = excluded.status`,
		"findByID": `SELECT * FROM request WHERE message_id = :messageID:`,
	}
	err := proteus.ShouldBuild(context.Background(), &RequestDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
