package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kalexmills/rhyme-hammer/src/datamuse"
	"github.com/kalexmills/rhyme-hammer/src/lines"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
	"github.com/kalexmills/rhyme-hammer/src/wordofday"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found,", err)
	}
	conf := readConfig()

	sqlDB, err := sql.Open("sqlite3", viper.GetString("dbPath"))
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	defer sqlDB.Close()
	if err := db.BootstrapDB(sqlDB); err != nil {
		log.Fatalf("could not bootstrap database: %v", err)
	}

	source := datamuse.NewClient(viper.GetFloat64("datamuseRate"))
	source.Max = viper.GetInt("datamuseMax")
	finder := rhymehammer.NewFinder(source)
	words := wordofday.NewService(sqlDB, wordofday.NewDictionaryClient(), nil)

	var gen *lines.Generator
	if key := viper.GetString("openaiKey"); key != "" {
		usage := lines.NewTracker(viper.GetInt("dailyLimit"), viper.GetInt("hourlyLimit"), nil)
		gen = lines.NewGenerator(key, viper.GetString("openaiBaseURL"), viper.GetString("openaiModel"), usage)
	} else {
		log.Println("no OpenAI key configured, line generation is disabled")
	}

	rh := rhymehammer.NewRhymeHammer(conf, sqlDB, finder, words, gen)
	if conf.Token != "" {
		if err := rh.Open(); err != nil {
			log.Fatalf("fail error opening bot: %v", err)
		}
		log.Println("Bot is now running.")
	} else {
		log.Println("no Discord token configured, serving the HTTP API only")
	}

	c := cron.New()
	if err := rh.Schedule(c, viper.GetString("wordOfDayCron")); err != nil {
		log.Fatalf("could not schedule word of the day: %v", err)
	}
	c.Start()

	srv := &http.Server{
		Addr:    viper.GetString("httpAddr"),
		Handler: rhymehammer.NewAPI(finder, words, gen).Router(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("could not serve HTTP API: %v", err)
		}
	}()
	log.Printf("HTTP API listening on %s.  Press CTRL-C to exit.", srv.Addr)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	<-c.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("error shutting down HTTP server,", err)
	}
	// Cleanly close down the Discord session.
	if err := rh.Close(); err != nil {
		log.Println("error closing session,", err)
	}
}

func readConfig() rhymehammer.Config {
	viper.SetDefault("showStrength", true)
	viper.SetDefault("showStress", false)
	viper.SetDefault("generateLines", false)
	viper.SetDefault("maxResults", 10)
	viper.SetDefault("dbPath", "./rhymeDB.sqlite3")
	viper.SetDefault("httpAddr", ":8080")
	viper.SetDefault("datamuseRate", 5)
	viper.SetDefault("datamuseMax", 100)
	viper.SetDefault("wordOfDayCron", "0 9 * * *")
	viper.SetDefault("openaiModel", "")
	viper.SetDefault("openaiBaseURL", "")
	viper.SetDefault("dailyLimit", lines.DefaultDailyLimit)
	viper.SetDefault("hourlyLimit", lines.DefaultHourlyLimit)
	viper.SetDefault("debug", false)

	viper.SetEnvPrefix("RHYME_HAMMER")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath("/etc/rhymehammer")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		log.Println("no config file found, using defaults,", err)
	}
	flags := db.ConfigFlag(0)
	if viper.GetBool("showStrength") {
		flags |= db.ConfigShowStrength
	}
	if viper.GetBool("showStress") {
		flags |= db.ConfigShowStress
	}
	if viper.GetBool("generateLines") {
		flags |= db.ConfigGenerateLines
	}
	return rhymehammer.Config{
		Token:        viper.GetString("token"),
		DefaultFlags: flags,
		MaxResults:   viper.GetInt("maxResults"),
		Debug:        viper.GetBool("debug"),
	}
}
