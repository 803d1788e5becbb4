package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/kalexmills/couplet-hammer/src/couplethammer"
	"github.com/kalexmills/couplet-hammer/src/couplethammer/db"
	"github.com/kalexmills/couplet-hammer/src/dict"
	"github.com/kalexmills/couplet-hammer/src/poem"
)

func main() {
	conf, paths, maxPairs := readConfig()

	oracles, err := dict.Load(context.Background(), paths)
	if err != nil {
		log.Fatalf("fail error loading dictionaries: %v", err)
	}
	composer := poem.NewComposer(oracles.Lexicon(), poem.WithMaxPairs(maxPairs), poem.WithDebug(conf.Debug))
	ch := couplethammer.NewCoupletHammer(conf, composer)

	err = ch.Open()
	if err != nil {
		log.Fatalf("fail error opening bot: %v", err)
	}

	log.Println("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	err = ch.Close()
	if err != nil {
		log.Println("error closing session,", err)
	}
}

func readConfig() (couplethammer.Config, dict.Paths, int) {
	viper.SetDefault("composeOnMention", true)
	viper.SetDefault("serveRandomCouplet", true)
	viper.SetDefault("explainFailure", true)
	viper.SetDefault("reactToRequest", false)
	viper.SetDefault("positiveReacts", []string{"💯", "🎶", "📜", "🪶"})
	viper.SetDefault("negativeReacts", []string{"🚫", "🤷"})
	viper.SetDefault("dbPath", "./coupletDB.sqlite3")
	viper.SetDefault("debug", false)

	viper.SetDefault("cmuDictPath", "./data/cmudict-0.7b.txt")
	viper.SetDefault("wordnetPath", "./data/english-wordnet.json")
	viper.SetDefault("vectorsPath", "./data/vectors.bin")
	viper.SetDefault("vectorsBinary", true)
	viper.SetDefault("neighbors", dict.DefaultNeighbors)
	viper.SetDefault("spellMaxDistance", dict.DefaultSpellMaxDistance)

	viper.SetDefault("maxPairs", 50)
	viper.SetDefault("composeTimeout", 30*time.Second)
	viper.SetDefault("historyLimit", 200)
	viper.SetDefault("maxLineChars", 70)

	viper.SetEnvPrefix("COUPLET_HAMMER")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath("/etc/couplethammer")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		log.Println("no config file found, using defaults,", err)
	}
	flags := db.ConfigFlag(0)
	if viper.GetBool("composeOnMention") {
		flags |= db.ConfigComposeOnMention
	}
	if viper.GetBool("serveRandomCouplet") {
		flags |= db.ConfigServeRandomCouplet
	}
	if viper.GetBool("explainFailure") {
		flags |= db.ConfigExplainFailure
	}
	if viper.GetBool("reactToRequest") {
		flags |= db.ConfigReactToRequest
	}
	conf := couplethammer.Config{
		Token:          viper.GetString("token"),
		ActionFlags:    flags,
		PositiveReacts: viper.GetStringSlice("positiveReacts"),
		NegativeReacts: viper.GetStringSlice("negativeReacts"),
		Debug:          viper.GetBool("debug"),
		DBPath:         viper.GetString("dbPath"),
		ComposeTimeout: viper.GetDuration("composeTimeout"),
		HistoryLimit:   viper.GetInt("historyLimit"),
		MaxLineChars:   viper.GetInt("maxLineChars"),
	}
	paths := dict.Paths{
		CMUDict:          viper.GetString("cmuDictPath"),
		WordNet:          viper.GetString("wordnetPath"),
		Vectors:          viper.GetString("vectorsPath"),
		VectorsBinary:    viper.GetBool("vectorsBinary"),
		Neighbors:        viper.GetInt("neighbors"),
		SpellMaxDistance: viper.GetInt("spellMaxDistance"),
	}
	return conf, paths, viper.GetInt("maxPairs")
}
