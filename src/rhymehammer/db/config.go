package db

import (
	"context"
	"strings"

	"github.com/jonbodner/proteus"
)

// ConfigFlag is a bitmask of features enabled for a guild or channel.
type ConfigFlag int64

const (
	ConfigShowStrength ConfigFlag = 1 << iota
	ConfigShowStress
	ConfigPostWordOfDay
	ConfigGenerateLines
)

// FlagNames maps the feature names used in admin commands to their flags, in display order.
var FlagNames = []struct {
	Name string
	Flag ConfigFlag
}{
	{"ShowStrength", ConfigShowStrength},
	{"ShowStress", ConfigShowStress},
	{"PostWordOfDay", ConfigPostWordOfDay},
	{"GenerateLines", ConfigGenerateLines},
}

func (f ConfigFlag) ShowStrength() bool {
	return f&ConfigShowStrength > 0
}

func (f ConfigFlag) ShowStress() bool {
	return f&ConfigShowStress > 0
}

func (f ConfigFlag) PostWordOfDay() bool {
	return f&ConfigPostWordOfDay > 0
}

func (f ConfigFlag) GenerateLines() bool {
	return f&ConfigGenerateLines > 0
}

func (f ConfigFlag) Or(other ConfigFlag) ConfigFlag {
	return f | other
}

func (f ConfigFlag) And(other ConfigFlag) ConfigFlag {
	return f & other
}

func (f ConfigFlag) String() string {
	var names []string
	for _, fn := range FlagNames {
		if f&fn.Flag > 0 {
			names = append(names, fn.Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// LookupFlags combines the guild-wide and channel flags. found is false when neither level has been
// configured, in which case callers should fall back to their defaults.
func LookupFlags(ctx context.Context, e proteus.ContextQuerier, guildID int64, channelID int64) (flags ConfigFlag, found bool, err error) {
	chanConf, err := ChannelConfigDAO.FindByID(ctx, e, channelID)
	if err != nil {
		return 0, false, err
	}
	guildConf, err := GuildConfigDAO.FindByID(ctx, e, guildID)
	if err != nil {
		return 0, false, err
	}
	found = chanConf.ChannelID != 0 || guildConf.GuildID != 0
	return guildConf.Flags.Or(chanConf.Flags), found, nil
}

type ChannelConfig struct {
	ChannelID int64      `prof:"channel_id"`
	Flags     ConfigFlag `prof:"flags"`
}

var ChannelConfigDAO ChannelConfigDAOImpl

type ChannelConfigDAOImpl struct {
	Upsert       func(ctx context.Context, e proteus.ContextExecutor, channelID int64, flags ConfigFlag) (int64, error) `proq:"q:chan_upsert" prop:"channelID,flags"`
	FindByID     func(ctx context.Context, e proteus.ContextQuerier, channelID int64) (ChannelConfig, error)            `proq:"q:chan_findByID" prop:"channelID"`
	FindWithFlag func(ctx context.Context, e proteus.ContextQuerier, flag ConfigFlag) ([]ChannelConfig, error)         `proq:"q:chan_findWithFlag" prop:"flag"`
}

type GuildConfig struct {
	GuildID    int64      `prof:"guild_id"`
	Flags      ConfigFlag `prof:"flags"`
	MaxResults int        `prof:"max_results"`
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
		"chan_findByID":     `SELECT channel_id, flags FROM channel_config WHERE channel_id = :channelID:`,
		"chan_findWithFlag": `SELECT channel_id, flags FROM channel_config WHERE flags & :flag: != 0 ORDER BY channel_id`,
		"guild_upsert": `INSERT INTO guild_config (guild_id, flags, max_results)
						VALUES (:config.GuildID:, :config.Flags:, :config.MaxResults:)
						ON CONFLICT (guild_id)
						DO UPDATE SET flags = excluded.flags, max_results = excluded.max_results`,
		"guild_findByID": `SELECT guild_id, flags, max_results FROM guild_config WHERE guild_id = :guildID:`,
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
