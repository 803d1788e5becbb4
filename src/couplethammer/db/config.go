package db

import (
	"context"
	"strings"

	"github.com/jonbodner/proteus"
)

type ConfigFlag int64

func (f ConfigFlag) ComposeOnMention() bool {
	return f&ConfigComposeOnMention > 0
}

func (f ConfigFlag) ServeRandomCouplet() bool {
	return f&ConfigServeRandomCouplet > 0
}

func (f ConfigFlag) ExplainFailure() bool {
	return f&ConfigExplainFailure > 0
}

func (f ConfigFlag) ReactToRequest() bool {
	return f&ConfigReactToRequest > 0
}

func (f ConfigFlag) Or(other ConfigFlag) ConfigFlag {
	return f | other
}

func (f ConfigFlag) And(other ConfigFlag) ConfigFlag {
	return f & other
}

// String lists the names of the enabled features.
func (f ConfigFlag) String() string {
	var names []string
	for _, feature := range Features {
		if f&feature.Flag > 0 {
			names = append(names, feature.Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

const (
	ConfigComposeOnMention ConfigFlag = 1 << iota
	ConfigServeRandomCouplet
	ConfigExplainFailure
	ConfigReactToRequest
)

// Features names every flag, in the order they are listed to users.
var Features = []struct {
	Name string
	Flag ConfigFlag
}{
	{"ComposeOnMention", ConfigComposeOnMention},
	{"ServeRandomCouplet", ConfigServeRandomCouplet},
	{"ExplainFailure", ConfigExplainFailure},
	{"ReactToRequest", ConfigReactToRequest},
}

// LookupFlags returns the flags enabled for the guild or the channel.
func LookupFlags(ctx context.Context, e proteus.ContextQuerier, guildID int64, channelID int64) (ConfigFlag, error) {
	chanConf, err := ChannelConfigDAO.FindByID(ctx, e, channelID)
	if err != nil {
		return 0, err
	}
	guildConf, err := GuildConfigDAO.FindByID(ctx, e, guildID)
	if err != nil {
		return 0, err
	}
	return guildConf.Flags.Or(chanConf.Flags), nil
}

type ChannelConfig struct {
	ChannelID int64      `prof:"channel_id"`
	Flags     ConfigFlag `prof:"flags"`
}

var ChannelConfigDAO ChannelConfigDAOImpl

type ChannelConfigDAOImpl struct {
	Upsert   func(ctx context.Context, e proteus.ContextExecutor, channelID int64, flags int64) (int64, error) `proq:"q:chan_upsert" prop:"channelID,flags"`
	FindByID func(ctx context.Context, e proteus.ContextQuerier, channelID int64) (ChannelConfig, error)     `proq:"q:chan_findByID" prop:"channelID"`
}

type GuildConfig struct {
	GuildID        int64      `prof:"guild_id"`
	Flags          ConfigFlag `prof:"flags"`
	PositiveReacts string     `prof:"positive_reacts"`
	NegativeReacts string     `prof:"negative_reacts"`
}

// Reacts splits a comma-separated list of emoji. Empty lists give nil.
func Reacts(list string) []string {
	var result []string
	for _, react := range strings.Split(list, ",") {
		if react = strings.TrimSpace(react); react != "" {
			result = append(result, react)
		}
	}
	return result
}

var GuildConfigDAO GuildConfigDAOImpl

type GuildConfigDAOImpl struct {
	Upsert   func(ctx context.Context, e proteus.ContextExecutor, config GuildConfig) (int64, error) `proq:"q:guild_upsert" prop:"config"`
	FindByID func(ctx context.Context, e proteus.ContextQuerier, guildID int64) (GuildConfig, error) `proq:"q:guild_findByID" prop:"guildID"`
}

func init() {
	ctx := context.Background()
	m := proteus.MapMapper{
		"chan_upsert": `INSERT INTO channel_config (channel_id, flags)
						VALUES (:channelID:, :flags:)
						ON CONFLICT (channel_id)
						DO UPDATE SET flags = excluded.flags`,
		"chan_findByID": `SELECT * FROM channel_config WHERE channel_id = :channelID:`,
		"guild_upsert": `INSERT INTO guild_config (guild_id, flags, positive_reacts, negative_reacts)
						VALUES (:config.GuildID:, :config.Flags:, :config.PositiveReacts:, :config.NegativeReacts:)
						ON CONFLICT (guild_id)
						DO UPDATE SET flags = excluded.flags, positive_reacts = excluded.positive_reacts, negative_reacts = excluded.negative_reacts`,
		"guild_findByID": `SELECT * FROM guild_config WHERE guild_id = :guildID:`,
	}
	err := proteus.ShouldBuild(ctx, &ChannelConfigDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
	err = proteus.ShouldBuild(ctx, &GuildConfigDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
