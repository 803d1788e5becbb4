package couplethammer

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/kalexmills/couplet-hammer/src/couplethammer/db"
)

func TestIsAdminCommand(t *testing.T) {
	assert.True(t, isAdminCommand("!couplet"))
	assert.True(t, isAdminCommand("!couplet help"))
	assert.False(t, isAdminCommand("!couplets help"))
	assert.False(t, isAdminCommand("hello !couplet"))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content  string
		expected Command
	}{
		{" help", Command{Operation: OpHelp}},
		{" feature on global ComposeOnMention", Command{Operation: OpFeatureOn, Target: "global", Features: db.ConfigComposeOnMention}},
		{" feature off <#1234> explainfailure ReactToRequest", Command{Operation: OpFeatureOff, Target: "1234", Features: db.ConfigExplainFailure | db.ConfigReactToRequest}},
		{" feature list <#42>", Command{Operation: OpFeatureList, Target: "42"}},
	}
	for _, tt := range tests {
		command, err := parseCommand(tt.content)
		if assert.NoError(t, err, tt.content) {
			assert.Equal(t, tt.expected, command, tt.content)
		}
	}

	bad := []string{
		"",
		" feature",
		" feature on global",
		" feature list",
		" feature on #general ComposeOnMention",
		" feature on <#abc> ComposeOnMention",
		" feature on global Haiku",
		" compose",
	}
	for _, content := range bad {
		_, err := parseCommand(content)
		assert.Error(t, err, content)
	}
}

func TestMutateFeatures(t *testing.T) {
	current := db.ConfigComposeOnMention | db.ConfigReactToRequest

	assert.Equal(t, current|db.ConfigExplainFailure, EnableFeatures(current, db.ConfigExplainFailure))
	assert.Equal(t, db.ConfigComposeOnMention, DisableFeatures(current, db.ConfigReactToRequest|db.ConfigServeRandomCouplet))
}

func TestCommand_MentionTarget(t *testing.T) {
	assert.Equal(t, "global", Command{Target: "global"}.MentionTarget())
	assert.Equal(t, "<#1234>", Command{Target: "1234"}.MentionTarget())
}

func TestMemberPermissions(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "guild", Permissions: discordgo.PermissionSendMessages},
		{ID: "mod", Permissions: discordgo.PermissionManageChannels},
		{ID: "admin", Permissions: discordgo.PermissionAdministrator},
	}

	perms := memberPermissions("guild", nil, roles)
	assert.Equal(t, int64(discordgo.PermissionSendMessages), perms)
	assert.Zero(t, perms&adminCommandPerms)

	perms = memberPermissions("guild", []string{"mod"}, roles)
	assert.NotZero(t, perms&adminCommandPerms)
	assert.NotZero(t, perms&discordgo.PermissionSendMessages)

	assert.Equal(t, int64(discordgo.PermissionAll), memberPermissions("guild", []string{"admin", "missing"}, roles))
}
