package rhymehammer

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshSpec warms the word-of-day cache shortly after midnight.
const RefreshSpec = "5 0 * * *"

const jobTimeout = 2 * time.Minute

// Schedule registers the daily word-of-day jobs on c. postSpec is the cron spec for posting to
// channels with PostWordOfDay enabled.
func (h *RhymeHammer) Schedule(c *cron.Cron, postSpec string) error {
	_, err := c.AddFunc(RefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		w, err := h.words.Today(ctx)
		if err != nil {
			log.Println("could not refresh word of the day,", err)
			return
		}
		log.Printf("word of the day is %q", w.Word)
	})
	if err != nil {
		return err
	}
	_, err = c.AddFunc(postSpec, func() {
		if h.session == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := h.PostWordOfDay(ctx, h.session); err != nil {
			log.Println("could not post word of the day,", err)
		}
	})
	return err
}
