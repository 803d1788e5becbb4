package couplethammer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kalexmills/couplet-hammer/src/couplethammer/db"
)

const commandPrefix = "!couplet"

// adminCommandPerms is a bitmask for the min permissions required to send admin commands. If any flag is set, the
// user can send CoupletHammer admin commands.
const adminCommandPerms = discordgo.PermissionAdministrator | discordgo.PermissionManageChannels | discordgo.PermissionManageServer

func isAdminCommand(content string) bool {
	return content == commandPrefix || strings.HasPrefix(content, commandPrefix+" ")
}

func (h *CoupletHammer) HandleAdminCommand(s *discordgo.Session, m *discordgo.Message) {
	if m.GuildID == "" {
		h.DM(s, m, "Admin commands must be sent in the server they are meant to apply to.")
		return
	}
	perms, err := h.Permissions(s, m)
	if err != nil {
		log.Println("could not retrieve permissions for user, ignoring admin command,", err)
		return
	}
	if perms&adminCommandPerms == 0 {
		if h.config.Debug {
			log.Printf("could not verify admin permissions, found perms %d, expected %d", perms, adminCommandPerms)
		}
		h.DM(s, m, fmt.Sprintf("You do not have permissions to manage CoupletHammer in <#%s>", m.ChannelID))
		return
	}
	command, err := parseCommand(strings.TrimPrefix(m.Content, commandPrefix))
	if err != nil {
		h.reply(s, m, err.Error())
		return
	}

	switch command.Operation {
	case OpFeatureOn:
		if err := h.updateFeatures(m, command, EnableFeatures); err != nil {
			h.reply(s, m, "Could not update features, please try again later.")
			return
		}
		h.reply(s, m, fmt.Sprintf("Enabled features %s for target %s", command.Features, command.MentionTarget()))
	case OpFeatureOff:
		if err := h.updateFeatures(m, command, DisableFeatures); err != nil {
			h.reply(s, m, "Could not update features, please try again later.")
			return
		}
		h.reply(s, m, fmt.Sprintf("Disabled features %s for target %s", command.Features, command.MentionTarget()))
	case OpFeatureList:
		h.handleFeatureList(s, m, command)
	case OpHelp:
		h.reply(s, m, AdminHelp)
	}
}

// Permissions computes the guild permissions of the author of m from their roles.
func (h *CoupletHammer) Permissions(s *discordgo.Session, m *discordgo.Message) (int64, error) {
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
	return memberPermissions(m.GuildID, member.Roles, roles), nil
}

// memberPermissions ORs the @everyone role, whose ID is the guild ID, with every role the
// member has.
func memberPermissions(guildID string, memberRoles []string, roles []*discordgo.Role) int64 {
	roleMap := make(map[string]int64)
	for _, role := range roles {
		roleMap[role.ID] = role.Permissions
	}
	permissions := roleMap[guildID]
	for _, role := range memberRoles {
		permissions |= roleMap[role]
	}
	if permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll
	}
	return permissions
}

func (h *CoupletHammer) handleFeatureList(s *discordgo.Session, m *discordgo.Message, command Command) {
	ctx := context.Background()
	var flags db.ConfigFlag
	switch command.Target {
	case "global":
		gid, err := strconv.ParseInt(m.GuildID, 10, 64)
		if err != nil {
			log.Println("could not parse guildID as integer,", m.GuildID)
			return
		}
		currConfig, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid)
		if err != nil {
			log.Println("could not read guild config from database,", err)
			return
		}
		flags = currConfig.Flags
	default:
		cid, err := strconv.ParseInt(command.Target, 10, 64)
		if err != nil {
			log.Println("could not parse channelID as integer,", command.Target)
			return
		}
		currConfig, err := db.ChannelConfigDAO.FindByID(ctx, h.db, cid)
		if err != nil {
			log.Println("could not read channel config from database,", err)
			return
		}
		flags = currConfig.Flags
	}
	h.reply(s, m, fmt.Sprintf("Features enabled for target %s: %s", command.MentionTarget(), flags))
}

type featureMutator func(db.ConfigFlag, db.ConfigFlag) db.ConfigFlag

func EnableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.Or(feats)
}

func DisableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.And(^feats) // and with bitwise not
}

func (h *CoupletHammer) updateFeatures(m *discordgo.Message, command Command, mutator featureMutator) error {
	ctx := context.Background()
	switch command.Target {
	case "global":
		gid, err := strconv.ParseInt(m.GuildID, 10, 64)
		if err != nil {
			log.Println("could not parse guildID as integer,", m.GuildID)
			return err
		}
		currConfig, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid) // read
		if err != nil {
			log.Println("could not retrieve guild config,", err)
			return err
		}

		// modify
		currConfig.GuildID = gid
		currConfig.Flags = mutator(currConfig.Flags, command.Features)

		_, err = db.GuildConfigDAO.Upsert(ctx, h.db, currConfig) // write
		if err != nil {
			log.Println("could not update guild config,", err)
			return err
		}
	default: // channel ID (target was verified by parseCommand)
		cid, err := strconv.ParseInt(command.Target, 10, 64)
		if err != nil {
			log.Println("could not parse channelID as integer,", command.Target)
			return err
		}
		currConfig, err := db.ChannelConfigDAO.FindByID(ctx, h.db, cid) // read
		if err != nil {
			log.Println("could not retrieve channel config,", err)
			return err
		}

		currConfig.Flags = mutator(currConfig.Flags, command.Features)

		_, err = db.ChannelConfigDAO.Upsert(ctx, h.db, cid, int64(currConfig.Flags)) // write
		if err != nil {
			log.Println("could not update channel config,", err)
			return err
		}
	}
	return nil
}

type Operation uint8

const (
	OpFeatureOn Operation = iota
	OpFeatureOff
	OpFeatureList
	OpHelp
)

type Command struct {
	Operation Operation
	Target    string
	Features  db.ConfigFlag
}

func (c Command) MentionTarget() string {
	if c.Target == "global" {
		return "global"
	}
	return fmt.Sprintf("<#%s>", c.Target)
}

func parseCommand(content string) (Command, error) {
	var err error
	tokens := strings.Fields(content)
	if len(tokens) < 1 {
		return Command{}, errors.New("expected a valid command after `!couplet`; send `!couplet help` for help")
	}
	command := tokens[0]
	if len(tokens) > 1 {
		command += " " + tokens[1]
	}
	result := Command{}
	switch {
	case command == "feature on":
		result.Operation = OpFeatureOn
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature on`; send `!couplet help` for help")
		}
	case command == "feature off":
		result.Operation = OpFeatureOff
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature off`; send `!couplet help` for help")
		}
	case command == "feature list":
		result.Operation = OpFeatureList
		if len(tokens) < 3 {
			return Command{}, errors.New("expected a target after `feature list`; send `!couplet help` for help")
		}
	case tokens[0] == "help":
		result.Operation = OpHelp
		return result, nil
	default:
		return Command{}, fmt.Errorf("could not understand command %s; send `!couplet help` for help", command)
	}

	// parse channel mention
	result.Target = tokens[2]
	if result.Target != "global" && strings.HasPrefix(result.Target, "<#") {
		id, err := strconv.ParseInt(strings.TrimSuffix(result.Target[2:], ">"), 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("couldn't parse target '%s' as valid channel mention", result.Target)
		}
		result.Target = strconv.FormatInt(id, 10)
	} else if result.Target != "global" {
		return Command{}, fmt.Errorf("couldn't parse target '%s' as valid target", result.Target)
	}

	result.Features, err = parseFeatures(tokens[3:])
	if err != nil {
		return Command{}, err
	}
	return result, nil
}

func parseFeatures(features []string) (db.ConfigFlag, error) {
	var result db.ConfigFlag
	for _, feature := range features {
		found := false
		for _, known := range db.Features {
			if strings.EqualFold(feature, known.Name) {
				result |= known.Flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("could not understand '%s' as a valid feature; send `!couplet help` for help", feature)
		}
	}
	return result, nil
}

var AdminHelp = `All commands must be sent in the guild they are meant to apply to.
  ~~~!couplet feature on [target] [feature feature...]~~~
  ~~~!couplet feature off [target] [feature feature...]~~~
  ~~~!couplet feature list [target]~~~

~~~[target]~~~ can be either a channel mention or ~~~global~~~ to enable features for every channel in the guild.
~~~[feature feature...]~~~ is a space-separated list of features from the below list.

   - ~~~ComposeOnMention~~~ - composes a couplet from recent messages when mentioned with ~~~-query "words"~~~
   - ~~~ServeRandomCouplet~~~ - reacts to mentions without a query by quoting a couplet previously composed in the same guild
   - ~~~ExplainFailure~~~ - sends a DM explaining why no couplet could be composed
   - ~~~ReactToRequest~~~ - adds an emoji reaction to every request, depending on whether it succeeded
`

func init() {
	AdminHelp = strings.ReplaceAll(AdminHelp, "~~~", "`")
}
