package rhymehammer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/rhyme-hammer/src/lines"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
	"github.com/kalexmills/rhyme-hammer/src/wordofday"
)

const requestTimeout = 30 * time.Second

type Config struct {
	Token string
	// DefaultFlags apply in channels and guilds which have never been configured.
	DefaultFlags db.ConfigFlag
	MaxResults   int

	Debug bool
}

func (c Config) String() string {
	return fmt.Sprintf("\tDefaultFlags: %s\n\tMaxResults: %d\n\tDebug: %t\n", c.DefaultFlags, c.MaxResults, c.Debug)
}

type RhymeHammer struct {
	session *discordgo.Session

	config Config
	db     *sql.DB
	finder *Finder
	words  *wordofday.Service
	// lines is nil when line generation is not configured.
	lines *lines.Generator
	now   func() time.Time

	mut     sync.Mutex
	dmCache map[string]*discordgo.Channel
}

func NewRhymeHammer(config Config, sqlDB *sql.DB, finder *Finder, words *wordofday.Service, gen *lines.Generator) *RhymeHammer {
	log.Printf("Rhyme Bot Config:\n%v", config)
	return &RhymeHammer{
		config:  config,
		db:      sqlDB,
		finder:  finder,
		words:   words,
		lines:   gen,
		now:     time.Now,
		dmCache: make(map[string]*discordgo.Channel),
	}
}

func (h *RhymeHammer) Open() error {
	var err error
	h.session, err = discordgo.New("Bot " + h.config.Token)
	if err != nil {
		log.Println("error creating Discord session,", err)
		return err
	}

	if h.config.Debug {
		h.session.LogLevel = discordgo.LogDebug
	}

	h.session.AddHandler(h.ReceiveNewMessage)
	h.session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	err = h.session.Open()
	if err != nil {
		log.Println("error opening connection,", err)
		return err
	}
	return nil
}

func (h *RhymeHammer) Close() error {
	if h.session == nil {
		return nil
	}
	return h.session.Close()
}

func (h *RhymeHammer) ReceiveNewMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic on content, %s, panicking on: %v\n%s", strings.ReplaceAll(m.Content, "\n", "\\n"), r, debug.Stack())
		}
	}()
	if m.Author == nil || m.Author.Bot { // don't talk to bots
		return
	}
	if !IsCommand(m.Content) {
		return
	}
	ref := &discordgo.MessageReference{MessageID: m.ID, ChannelID: m.ChannelID, GuildID: m.GuildID}
	command, err := ParseCommand(strings.TrimPrefix(m.Content, Prefix))
	if err != nil {
		h.reply(s, m.ChannelID, err.Error(), ref)
		return
	}
	commands.WithLabelValues(command.Operation.String()).Inc()

	if command.Operation.Admin() && !h.checkAdmin(s, m.Message) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	reply := h.Respond(ctx, Request{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Command:   command,
	})
	h.reply(s, m.ChannelID, reply, ref)
}

func (h *RhymeHammer) reply(s *discordgo.Session, channelID, content string, ref *discordgo.MessageReference) {
	if _, err := s.ChannelMessageSendReply(channelID, content, ref); err != nil {
		log.Println("could not send reply,", err)
	}
}

// Request is a parsed command along with where it came from. GuildID is empty for direct messages.
type Request struct {
	GuildID   string
	ChannelID string
	AuthorID  string
	Command   Command
}

// Respond runs a command and returns the text to reply with. Failures are logged and explained to
// the user in the reply.
func (h *RhymeHammer) Respond(ctx context.Context, req Request) string {
	switch req.Command.Operation {
	case OpLookup:
		return h.handleLookup(ctx, req)
	case OpHistory:
		entries, err := db.SearchHistoryDAO.Recent(ctx, h.db, req.AuthorID, db.HistoryLimit)
		if err != nil {
			log.Println("could not read search history,", err)
			return "I couldn't read your search history right now."
		}
		return FormatHistory(entries)
	case OpClearHistory:
		if _, err := db.SearchHistoryDAO.Clear(ctx, h.db, req.AuthorID); err != nil {
			log.Println("could not clear search history,", err)
			return "I couldn't clear your search history right now."
		}
		return "Your search history has been cleared."
	case OpWordOfDay:
		w, err := h.words.Today(ctx)
		if err != nil {
			log.Println("could not fetch word of the day,", err)
			return "I couldn't fetch the word of the day right now."
		}
		return FormatWordOfDay(w)
	case OpLines, OpAnalyze:
		return h.handleLines(ctx, req)
	case OpUsage:
		if h.lines == nil {
			return "Line generation isn't configured."
		}
		return FormatUsage(h.lines.Usage())
	case OpHelp:
		if req.GuildID == "" {
			return Help
		}
		return Help + "\n" + AdminHelp
	case OpFeatureOn, OpFeatureOff, OpFeatureList:
		return h.handleFeatures(ctx, req)
	}
	return errNoCommand.Error()
}

func (h *RhymeHammer) handleLookup(ctx context.Context, req Request) string {
	cmd := req.Command
	l, err := h.finder.Lookup(ctx, cmd.Word)
	if err != nil {
		log.Println("could not look up word,", cmd.Word, err)
		return fmt.Sprintf("I couldn't look up **%s** right now.", cmd.Word)
	}
	h.remember(ctx, req.AuthorID, l.Word)

	flags, maxResults := h.settings(ctx, req.GuildID, req.ChannelID)
	filtered := l.Filter(cmd.Syllables)
	if cmd.Syllables > 0 && filtered.Total() == 0 {
		return fmt.Sprintf("I couldn't find any %s words for **%s**.", pluralSyllables(cmd.Syllables), l.Word)
	}
	return FormatLookup(filtered, flags, maxResults)
}

func (h *RhymeHammer) remember(ctx context.Context, userID, word string) {
	if userID == "" {
		return
	}
	entry := db.SearchEntry{UserID: userID, Word: word, SearchedAt: h.now().Unix()}
	if _, err := db.SearchHistoryDAO.Insert(ctx, h.db, entry); err != nil {
		log.Println("could not record search history,", err)
	}
}

func (h *RhymeHammer) handleLines(ctx context.Context, req Request) string {
	if h.lines == nil {
		return "Line generation isn't configured."
	}
	if req.GuildID != "" {
		if flags, _ := h.settings(ctx, req.GuildID, req.ChannelID); !flags.GenerateLines() {
			return "Line generation isn't enabled in this channel."
		}
	}

	var (
		reply string
		err   error
	)
	if req.Command.Operation == OpAnalyze {
		var a lines.Analysis
		a, err = h.lines.Analyze(ctx, req.Command.Line)
		reply = fmt.Sprintf("Mood: %s\nStyle: %s", a.Mood, a.Style)
	} else {
		var generated []string
		generated, err = h.lines.Generate(ctx, req.Command.Line, lines.Options{})
		reply = FormatLines(generated)
	}
	switch {
	case errors.Is(err, lines.ErrDailyLimit), errors.Is(err, lines.ErrHourlyLimit):
		lineRequests.WithLabelValues("limited").Inc()
		return err.Error()
	case err != nil:
		lineRequests.WithLabelValues("error").Inc()
		log.Println("could not generate lines,", err)
		return "I couldn't come up with anything right now."
	}
	lineRequests.WithLabelValues("ok").Inc()
	return reply
}

// settings returns the flags and result limit for a channel, falling back to the bot defaults.
func (h *RhymeHammer) settings(ctx context.Context, guildID, channelID string) (db.ConfigFlag, int) {
	flags, maxResults := h.config.DefaultFlags, h.config.MaxResults
	gid, err := parseID(guildID)
	if err != nil {
		log.Println("could not parse guildID as integer,", guildID)
		return flags, maxResults
	}
	cid, err := parseID(channelID)
	if err != nil {
		log.Println("could not parse channelID as integer,", channelID)
		return flags, maxResults
	}
	found, ok, err := db.LookupFlags(ctx, h.db, gid, cid)
	if err != nil {
		log.Println("could not read channel config from database,", err)
		return flags, maxResults
	}
	if ok {
		flags = found
	}
	if gid != 0 {
		gc, err := db.GuildConfigDAO.FindByID(ctx, h.db, gid)
		if err != nil {
			log.Println("could not read guild config from database,", err)
		} else if gc.MaxResults > 0 {
			maxResults = gc.MaxResults
		}
	}
	return flags, maxResults
}

// MessageSender posts a message to a channel.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string) (*discordgo.Message, error)
}

// PostWordOfDay sends the word of the day to every channel with PostWordOfDay enabled, returning
// the number of channels posted to.
func (h *RhymeHammer) PostWordOfDay(ctx context.Context, sender MessageSender) (int, error) {
	confs, err := db.ChannelConfigDAO.FindWithFlag(ctx, h.db, db.ConfigPostWordOfDay)
	if err != nil {
		return 0, fmt.Errorf("finding word of the day channels: %w", err)
	}
	if len(confs) == 0 {
		return 0, nil
	}
	w, err := h.words.Today(ctx)
	if err != nil {
		return 0, err
	}
	content := FormatWordOfDay(w)
	posted := 0
	for _, conf := range confs {
		if _, err := sender.ChannelMessageSend(strconv.FormatInt(conf.ChannelID, 10), content); err != nil {
			log.Println("could not post word of the day to channel,", conf.ChannelID, err)
			continue
		}
		posted++
	}
	log.Printf("posted word of the day %q to %d channels", w.Word, posted)
	return posted, nil
}

func (h *RhymeHammer) DM(s *discordgo.Session, m *discordgo.Message, content string) {
	dmChannel, err := h.createDMChannel(s, m.Author.ID)
	if err != nil {
		log.Println("could not create user DM channel,", err)
		return
	}
	if _, err := s.ChannelMessageSend(dmChannel.ID, content); err != nil {
		log.Println("could not send message to user DM channel,", err)
	}
}

func (h *RhymeHammer) createDMChannel(s *discordgo.Session, authorID string) (*discordgo.Channel, error) {
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

// parseID parses a Discord snowflake; the empty string is zero.
func parseID(id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	return strconv.ParseInt(id, 10, 64)
}
