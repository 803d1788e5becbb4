package couplethammer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kalexmills/couplet-hammer/src/couplethammer/db"
	"github.com/kalexmills/couplet-hammer/src/poem"
)

type Config struct {
	Token          string
	ActionFlags    db.ConfigFlag
	PositiveReacts []string
	NegativeReacts []string
	DBPath         string

	ComposeTimeout time.Duration
	HistoryLimit   int
	MaxLineChars   int

	Debug bool
}

func (c Config) String() string {
	return fmt.Sprintf("\tActionFlags: %s\n\tComposeTimeout: %v\n\tHistoryLimit: %d\n\tMaxLineChars: %d\n\tDBPath: %s\n",
		c.ActionFlags, c.ComposeTimeout, c.HistoryLimit, c.MaxLineChars, c.DBPath)
}

type CoupletHammer struct {
	session  *discordgo.Session
	db       *sql.DB
	composer *poem.Composer

	config Config

	mut     sync.Mutex
	dmCache map[string]*discordgo.Channel
}

func NewCoupletHammer(config Config, composer *poem.Composer) *CoupletHammer {
	log.Printf("Couplet Bot Config:\n%v", config)
	return &CoupletHammer{
		config:   config,
		composer: composer,
		dmCache:  make(map[string]*discordgo.Channel),
	}
}

func (h *CoupletHammer) Open() error {
	var err error
	h.db, err = db.Open(context.Background(), h.config.DBPath)
	if err != nil {
		log.Println("error opening database,", err)
		return err
	}
	go UpdateHashes(h.db)

	h.session, err = discordgo.New("Bot " + h.config.Token)
	if err != nil {
		log.Println("error creating Discord session,", err)
		return err
	}

	if h.config.Debug {
		h.session.LogLevel = discordgo.LogDebug
	}

	h.session.AddHandler(h.ReceiveNewMessage)

	h.session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessageReactions | discordgo.IntentsDirectMessageReactions

	err = h.session.Open()
	if err != nil {
		log.Println("error opening connection,", err)
		return err
	}
	return nil
}

func (h *CoupletHammer) Close() error {
	if h.db != nil {
		if err := h.db.Close(); err != nil {
			log.Println("error closing database,", err)
		}
	}
	if h.session == nil {
		return nil
	}
	return h.session.Close()
}

func (h *CoupletHammer) ReceiveNewMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic on content, %s, panicking on: %v\n%s", oneLine(m.Content), r, debug.Stack())
		}
	}()
	if m.Author == nil || m.Author.Bot { // prevent SkyNet; don't talk to bots
		return
	}
	if isAdminCommand(m.Content) {
		h.HandleAdminCommand(s, m.Message)
		return
	}
	if s.State == nil || s.State.User == nil || !mentions(m.Message, s.State.User.ID) {
		return
	}

	ctx := context.Background()
	mid, err := strconv.ParseInt(m.ID, 10, 64)
	if err != nil {
		log.Println("could not parse messageID as integer,", m.ID)
		return
	}
	if processed, err := db.IsProcessed(ctx, h.db, mid); err != nil {
		log.Println("could not look up request,", err)
		return
	} else if processed {
		return
	}

	flags := h.flags(ctx, m.GuildID, m.ChannelID)
	status := h.HandleRequest(s, m.Message, flags)
	if status == "" {
		return
	}
	h.markProcessed(ctx, m.Message, status)
}

// HandleRequest answers one mention and returns the status to record, or "" when the
// request was ignored.
func (h *CoupletHammer) HandleRequest(s *discordgo.Session, m *discordgo.Message, flags db.ConfigFlag) string {
	query, err := ParseQuery(m.Content)
	if err != nil {
		if !flags.ComposeOnMention() {
			return ""
		}
		log.Println("received bad query,", m.ID, oneLine(m.Content))
		h.reply(s, m, BadQueryHelp(s.State.User.Mention()))
		return db.StatusBadQuery
	}
	if query == "" {
		if !flags.ServeRandomCouplet() {
			return ""
		}
		h.ServeRandomCouplet(s, m)
		return db.StatusRandom
	}
	if !flags.ComposeOnMention() {
		return ""
	}

	couplet, err := h.Compose(s, m, query)
	if err != nil {
		log.Printf("could not compose a couplet for %q, %v", query, err)
		if flags.ReactToRequest() {
			h.react(s, m, randomString(h.reacts(m.GuildID, false)))
		}
		if flags.ExplainFailure() {
			h.DM(s, m, ExplainFailure(query, err))
		}
		return db.StatusFailed
	}

	h.reply(s, m, FormatReply(m.Author.Mention(), couplet))
	h.storeCouplet(m, query, couplet)
	if flags.ReactToRequest() {
		h.react(s, m, randomString(h.reacts(m.GuildID, true)))
	}
	return db.StatusComposed
}

// Compose builds a couplet from the channel history preceding m.
func (h *CoupletHammer) Compose(s *discordgo.Session, m *discordgo.Message, query string) (poem.Couplet, error) {
	ctx := context.Background()
	if h.config.ComposeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.ComposeTimeout)
		defer cancel()
	}
	src := &ChannelSource{
		Session:   s,
		ChannelID: m.ChannelID,
		BeforeID:  m.ID,
		Limit:     h.config.HistoryLimit,
		MaxChars:  h.config.MaxLineChars,
	}
	return h.composer.ComposeFrom(ctx, src, query)
}

func (h *CoupletHammer) ServeRandomCouplet(s *discordgo.Session, m *discordgo.Message) {
	gid, err := strconv.ParseInt(m.GuildID, 10, 64)
	if err != nil {
		log.Println("could not parse guildID as integer,", m.GuildID)
		return
	}
	c, err := db.CoupletDAO.Random(context.Background(), h.db, gid)
	if err != nil {
		log.Println("could not fetch random couplet,", err)
		return
	}
	if c.Line1 == "" {
		h.reply(s, m, "I haven't composed any couplets here yet. Ask me with -query \"some words\".")
		return
	}
	h.reply(s, m, fmt.Sprintf("%s\n- composed for %s", quote(c.Line1+"\n"+c.Line2), c.AuthorMention))
}

// FormatReply addresses a couplet to the user who asked for it.
func FormatReply(authorMention string, c poem.Couplet) string {
	return authorMention + "\n" + c.Line1 + "\n" + c.Line2
}

// ExplainFailure tells a user why no couplet came out of their request.
func ExplainFailure(query string, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("I ran out of time looking for a couplet about %q. Try a more specific query.", query)
	case errors.Is(err, poem.ErrNoComposablePair):
		return fmt.Sprintf("I couldn't find two recent messages about %q that I could turn into a rhyming couplet.", query)
	default:
		return fmt.Sprintf("Something went wrong while composing a couplet about %q, please try again later.", query)
	}
}

func (h *CoupletHammer) storeCouplet(m *discordgo.Message, query string, c poem.Couplet) {
	gid, _ := strconv.ParseInt(m.GuildID, 10, 64)
	cid, _ := strconv.ParseInt(m.ChannelID, 10, 64)
	mid, _ := strconv.ParseInt(m.ID, 10, 64)

	ctx := context.Background()
	hash := DuplicateHash(c.String())
	if err := db.CheckHash(ctx, h.db, mid, hash); err != nil {
		if !errors.Is(err, db.ErrDuplicateCouplet) {
			log.Println("could not check couplet hash,", err)
		}
		return
	}
	cost := c.Cost
	if math.IsInf(cost, 0) {
		cost = math.MaxFloat64
	}
	_, err := db.CoupletDAO.Upsert(ctx, h.db, db.Couplet{
		GuildID:       gid,
		ChannelID:     cid,
		MessageID:     mid,
		AuthorMention: m.Author.Mention(),
		Query:         query,
		Line1:         c.Line1,
		Line2:         c.Line2,
		Cost:          cost,
		Strategy:      c.Strategy.String(),
	})
	if err != nil {
		log.Println("could not store couplet,", err)
	}
}

func (h *CoupletHammer) markProcessed(ctx context.Context, m *discordgo.Message, status string) {
	mid, _ := strconv.ParseInt(m.ID, 10, 64)
	gid, _ := strconv.ParseInt(m.GuildID, 10, 64)
	cid, _ := strconv.ParseInt(m.ChannelID, 10, 64)
	_, err := db.RequestDAO.Upsert(ctx, h.db, db.Request{MessageID: mid, GuildID: gid, ChannelID: cid, Status: status})
	if err != nil {
		log.Println("could not mark request as processed,", err)
	}
}

// flags combines the configured defaults with the guild and channel settings.
func (h *CoupletHammer) flags(ctx context.Context, guildID, channelID string) db.ConfigFlag {
	gid, _ := strconv.ParseInt(guildID, 10, 64)
	cid, _ := strconv.ParseInt(channelID, 10, 64)
	stored, err := db.LookupFlags(ctx, h.db, gid, cid)
	if err != nil {
		log.Println("could not look up feature flags,", err)
	}
	return h.config.ActionFlags.Or(stored)
}

// reacts returns the guild's custom reactions, falling back to the configured ones.
func (h *CoupletHammer) reacts(guildID string, positive bool) []string {
	defaults := h.config.NegativeReacts
	if positive {
		defaults = h.config.PositiveReacts
	}
	gid, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return defaults
	}
	conf, err := db.GuildConfigDAO.FindByID(context.Background(), h.db, gid)
	if err != nil {
		log.Println("could not read guild config from database,", err)
		return defaults
	}
	custom := db.Reacts(conf.NegativeReacts)
	if positive {
		custom = db.Reacts(conf.PositiveReacts)
	}
	if len(custom) == 0 {
		return defaults
	}
	return custom
}

func (h *CoupletHammer) reply(s *discordgo.Session, m *discordgo.Message, content string) {
	ref := &discordgo.MessageReference{MessageID: m.ID, ChannelID: m.ChannelID, GuildID: m.GuildID}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, ref); err != nil {
		log.Println("could not send reply,", err)
	}
}

func (h *CoupletHammer) DM(s *discordgo.Session, m *discordgo.Message, content string) {
	dmChannel, err := h.createDMChannel(s, m.Author.ID)
	if err != nil {
		log.Println("could not create user DM channel,", err)
		return
	}
	_, err = s.ChannelMessageSend(dmChannel.ID, content)
	if err != nil {
		log.Println("could not send message to user DM channel,", err)
		return
	}
}

func (h *CoupletHammer) react(s *discordgo.Session, m *discordgo.Message, reaction string) {
	if reaction == "" {
		return
	}
	err := s.MessageReactionAdd(m.ChannelID, m.ID, reaction)
	if err != nil {
		log.Println("could not add emoji reaction,", err)
		return
	}
}

func (h *CoupletHammer) createDMChannel(s *discordgo.Session, authorID string) (*discordgo.Channel, error) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if c, ok := h.dmCache[authorID]; ok {
		return c, nil
	}
	c, err := s.UserChannelCreate(authorID)
	if err != nil {
		return nil, err
	}
	log.Println("retrieved new DM channel for user", authorID)
	h.dmCache[authorID] = c
	return c, nil
}

func mentions(m *discordgo.Message, userID string) bool {
	for _, u := range m.Mentions {
		if u != nil && u.ID == userID {
			return true
		}
	}
	return false
}

func randomString(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	return strs[rand.Intn(len(strs))]
}

func quote(str string) string {
	return "> " + strings.ReplaceAll(str, "\n", "\n> ")
}

func oneLine(str string) string {
	return strings.ReplaceAll(str, "\n", "\\n")
}
