package db_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func TestMain(m *testing.M) {
	var err error
	DB, err = sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	// a second connection would see a different in-memory database
	DB.SetMaxOpenConns(1)

	err = db.BootstrapDB(DB)
	if err != nil {
		log.Fatalf("could not bootstrap database: %v", err)
	}

	code := m.Run()
	DB.Close()
	os.Exit(code)
}

func TestBootstrapDB_Idempotent(t *testing.T) {
	assert.NoError(t, db.BootstrapDB(DB))
}

func TestGuildConfigDAO_Upsert(t *testing.T) {
	ctx := context.Background()

	_, err := db.GuildConfigDAO.Upsert(ctx, DB, db.GuildConfig{GuildID: 10, Flags: 3, MaxResults: 8})
	require.NoError(t, err)

	conf, err := db.GuildConfigDAO.FindByID(ctx, DB, 10)
	require.NoError(t, err)
	assert.Equal(t, db.GuildConfig{GuildID: 10, Flags: 3, MaxResults: 8}, conf)

	_, err = db.GuildConfigDAO.Upsert(ctx, DB, db.GuildConfig{GuildID: 10, Flags: 4, MaxResults: 5})
	require.NoError(t, err)

	conf, err = db.GuildConfigDAO.FindByID(ctx, DB, 10)
	require.NoError(t, err)
	assert.Equal(t, db.GuildConfig{GuildID: 10, Flags: 4, MaxResults: 5}, conf)
}

func TestChannelConfigDAO_Upsert(t *testing.T) {
	ctx := context.Background()

	_, err := db.ChannelConfigDAO.Upsert(ctx, DB, 20, 12)
	require.NoError(t, err)

	conf, err := db.ChannelConfigDAO.FindByID(ctx, DB, 20)
	require.NoError(t, err)
	assert.Equal(t, db.ChannelConfig{ChannelID: 20, Flags: 12}, conf)

	_, err = db.ChannelConfigDAO.Upsert(ctx, DB, 20, 4)
	require.NoError(t, err)

	conf, err = db.ChannelConfigDAO.FindByID(ctx, DB, 20)
	require.NoError(t, err)
	assert.Equal(t, db.ChannelConfig{ChannelID: 20, Flags: 4}, conf)

	conf, err = db.ChannelConfigDAO.FindByID(ctx, DB, 21)
	assert.NoError(t, err)
	assert.Zero(t, conf.ChannelID)
}

func TestChannelConfigDAO_FindWithFlag(t *testing.T) {
	ctx := context.Background()

	_, err := db.ChannelConfigDAO.Upsert(ctx, DB, 31, db.ConfigPostWordOfDay|db.ConfigShowStress)
	require.NoError(t, err)
	_, err = db.ChannelConfigDAO.Upsert(ctx, DB, 32, db.ConfigShowStrength)
	require.NoError(t, err)
	_, err = db.ChannelConfigDAO.Upsert(ctx, DB, 33, db.ConfigPostWordOfDay)
	require.NoError(t, err)

	confs, err := db.ChannelConfigDAO.FindWithFlag(ctx, DB, db.ConfigPostWordOfDay)
	require.NoError(t, err)

	var ids []int64
	for _, c := range confs {
		if c.ChannelID > 30 && c.ChannelID < 40 {
			ids = append(ids, c.ChannelID)
		}
	}
	assert.Equal(t, []int64{31, 33}, ids)
}

func TestLookupFlags(t *testing.T) {
	ctx := context.Background()

	_, err := db.ChannelConfigDAO.Upsert(ctx, DB, 41, db.ConfigShowStrength)
	require.NoError(t, err)
	_, err = db.GuildConfigDAO.Upsert(ctx, DB, db.GuildConfig{GuildID: 42, Flags: db.ConfigShowStress})
	require.NoError(t, err)

	flags, found, err := db.LookupFlags(ctx, DB, 42, 41)
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 3, flags)
	assert.True(t, flags.ShowStrength())
	assert.True(t, flags.ShowStress())
	assert.False(t, flags.PostWordOfDay())
	assert.False(t, flags.GenerateLines())

	_, found, err = db.LookupFlags(ctx, DB, 4242, 4141)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConfigFlag_String(t *testing.T) {
	assert.Equal(t, "none", db.ConfigFlag(0).String())
	assert.Equal(t, "ShowStrength, PostWordOfDay", (db.ConfigShowStrength | db.ConfigPostWordOfDay).String())
}

func TestSearchHistoryDAO(t *testing.T) {
	ctx := context.Background()

	for i, word := range []string{"cat", "moon", "orange", "cat"} {
		_, err := db.SearchHistoryDAO.Insert(ctx, DB, db.SearchEntry{UserID: "u1", Word: word, SearchedAt: int64(100 + i)})
		require.NoError(t, err)
	}
	_, err := db.SearchHistoryDAO.Insert(ctx, DB, db.SearchEntry{UserID: "u2", Word: "light", SearchedAt: 500})
	require.NoError(t, err)

	entries, err := db.SearchHistoryDAO.Recent(ctx, DB, "u1", db.HistoryLimit)
	require.NoError(t, err)

	var words []string
	for _, e := range entries {
		words = append(words, e.Word)
	}
	assert.Equal(t, []string{"orange", "moon", "cat"}, words)

	entries, err = db.SearchHistoryDAO.Recent(ctx, DB, "u1", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, db.SearchEntry{UserID: "u1", Word: "orange", SearchedAt: 102}, entries[0])

	_, err = db.SearchHistoryDAO.Clear(ctx, DB, "u1")
	require.NoError(t, err)
	entries, err = db.SearchHistoryDAO.Recent(ctx, DB, "u1", db.HistoryLimit)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWordOfDayDAO(t *testing.T) {
	ctx := context.Background()

	w := db.WordOfDay{Date: "2026-10-19", Word: "zenith", Definition: "the highest point", Syllables: 2}
	_, err := db.WordOfDayDAO.Upsert(ctx, DB, w)
	require.NoError(t, err)

	found, err := db.WordOfDayDAO.FindByDate(ctx, DB, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, w, found)

	w.Example = "at the zenith of her career"
	_, err = db.WordOfDayDAO.Upsert(ctx, DB, w)
	require.NoError(t, err)
	found, err = db.WordOfDayDAO.FindByDate(ctx, DB, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, w, found)

	missing, err := db.WordOfDayDAO.FindByDate(ctx, DB, "1999-01-01")
	assert.NoError(t, err)
	assert.Zero(t, missing.Date)
}
