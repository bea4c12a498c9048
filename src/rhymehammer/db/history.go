package db

import (
	"context"

	"github.com/jonbodner/proteus"
)

// HistoryLimit is how many past searches are shown to a user.
const HistoryLimit = 10

type SearchEntry struct {
	UserID     string `prof:"user_id"`
	Word       string `prof:"word"`
	SearchedAt int64  `prof:"searched_at"`
}

var SearchHistoryDAO SearchHistoryDAOImpl

type SearchHistoryDAOImpl struct {
	// Insert leaves a word already in the user's history where it is.
	Insert func(ctx context.Context, e proteus.ContextExecutor, entry SearchEntry) (int64, error)               `proq:"q:insert" prop:"entry"`
	Recent func(ctx context.Context, e proteus.ContextQuerier, userID string, limit int) ([]SearchEntry, error) `proq:"q:recent" prop:"userID,limit"`
	Clear  func(ctx context.Context, e proteus.ContextExecutor, userID string) (int64, error)                   `proq:"q:clear" prop:"userID"`
}

func init() {
	m := proteus.MapMapper{
		"insert": `INSERT INTO search_history (user_id, word, searched_at)
				   VALUES (:entry.UserID:, :entry.Word:, :entry.SearchedAt:)
				   ON CONFLICT (user_id, word) DO NOTHING`,
		"recent": `SELECT user_id, word, searched_at FROM search_history
				   WHERE user_id = :userID:
				   ORDER BY searched_at DESC LIMIT :limit:`,
		"clear": `DELETE FROM search_history WHERE user_id = :userID:`,
	}
	err := proteus.ShouldBuild(context.Background(), &SearchHistoryDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
