package rhymehammer

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
)

// adminCommandPerms is a bitmask for the min permissions required to send admin commands. If any flag is set, the
// user can send RhymeHammer admin commands.
const adminCommandPerms = discordgo.PermissionAdministrator | discordgo.PermissionManageChannels | discordgo.PermissionManageServer

// checkAdmin reports whether the author of m may manage the bot, telling them privately when not.
func (h *RhymeHammer) checkAdmin(s *discordgo.Session, m *discordgo.Message) bool {
	if m.GuildID == "" {
		return true // rejected by handleFeatures with an explanation
	}
	perms, err := h.Permissions(s, m)
	if err != nil {
		log.Println("could not retrieve permissions for user, ignoring admin command,", err)
		return false
	}
	if perms&adminCommandPerms == 0 {
		if h.config.Debug {
			log.Printf("could not verify admin permissions, found perms %d, expected %d", perms, adminCommandPerms)
		}
		h.DM(s, m, fmt.Sprintf("You do not have permissions to manage RhymeHammer in <#%s>", m.ChannelID))
		return false
	}
	return true
}

func (h *RhymeHammer) Permissions(s *discordgo.Session, m *discordgo.Message) (int64, error) {
	g, err := s.Guild(m.GuildID)
	if err != nil {
		return 0, err
	}
	if g.OwnerID == m.Author.ID {
		return discordgo.PermissionAll, nil
	}
	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil {
		return 0, err
	}
	roles, err := s.GuildRoles(m.GuildID)
	if err != nil {
		return 0, err
	}
	roleMap := make(map[string]int64)
	for _, role := range roles {
		roleMap[role.ID] = role.Permissions
	}
	permissions := roleMap[m.GuildID] // @everyone shares the guild's ID
	for _, role := range member.Roles {
		permissions |= roleMap[role]
	}
	if permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll, nil
	}
	return permissions, nil
}

func (h *RhymeHammer) handleFeatures(ctx context.Context, req Request) string {
	command := req.Command
	if req.GuildID == "" {
		return "Features can only be managed from within a guild."
	}
	switch command.Operation {
	case OpFeatureOn:
		if err := h.updateFeatures(ctx, req.GuildID, command, EnableFeatures); err != nil {
			log.Println("could not enable features,", err)
			return "I couldn't update the features right now."
		}
		return fmt.Sprintf("Enabled features %s for target %s", command.Features, command.MentionTarget())
	case OpFeatureOff:
		if err := h.updateFeatures(ctx, req.GuildID, command, DisableFeatures); err != nil {
			log.Println("could not disable features,", err)
			return "I couldn't update the features right now."
		}
		return fmt.Sprintf("Disabled features %s for target %s", command.Features, command.MentionTarget())
	default:
		flags, err := h.currentFeatures(ctx, req.GuildID, command.Target)
		if err != nil {
			log.Println("could not read features,", err)
			return "I couldn't read the features right now."
		}
		return fmt.Sprintf("Features enabled for target %s: %s", command.MentionTarget(), flags)
	}
}

func (h *RhymeHammer) currentFeatures(ctx context.Context, guildID, target string) (db.ConfigFlag, error) {
	if target == "global" {
		gid, err := parseID(guildID)
		if err != nil {
			return 0, fmt.Errorf("parsing guildID %s: %w", guildID, err)
		}
		conf, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid)
		return conf.Flags, err
	}
	cid, err := parseID(target)
	if err != nil {
		return 0, fmt.Errorf("parsing channelID %s: %w", target, err)
	}
	conf, err := db.ChannelConfigDAO.FindByID(ctx, h.db, cid)
	return conf.Flags, err
}

type featureMutator func(db.ConfigFlag, db.ConfigFlag) db.ConfigFlag

func EnableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.Or(feats)
}

func DisableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.And(^feats) // and with bitwise not
}

func (h *RhymeHammer) updateFeatures(ctx context.Context, guildID string, command Command, mutator featureMutator) error {
	if command.Target == "global" {
		gid, err := parseID(guildID)
		if err != nil {
			return fmt.Errorf("parsing guildID %s: %w", guildID, err)
		}
		conf, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid) // read
		if err != nil {
			return err
		}
		conf.GuildID = gid
		conf.Flags = mutator(conf.Flags, command.Features) // modify
		_, err = db.GuildConfigDAO.Upsert(ctx, h.db, conf) // write
		return err
	}
	// channel ID, verified by ParseCommand
	cid, err := parseID(command.Target)
	if err != nil {
		return fmt.Errorf("parsing channelID %s: %w", command.Target, err)
	}
	conf, err := db.ChannelConfigDAO.FindByID(ctx, h.db, cid)
	if err != nil {
		return err
	}
	_, err = db.ChannelConfigDAO.Upsert(ctx, h.db, cid, mutator(conf.Flags, command.Features))
	return err
}
