package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/kalexmills/couplet-hammer/src/dict"
	"github.com/kalexmills/couplet-hammer/src/poem"
)

func main() {
	var (
		cmuPath     = flag.String("cmu", "data/cmudict-0.7b.txt", "path to the CMU pronouncing dictionary")
		wordnetPath = flag.String("wordnet", "data/english-wordnet.json", "path to a WordNet GWN-LMF JSON file")
		vectorsPath = flag.String("vectors", "data/vectors.bin", "path to word2vec vectors")
		binary      = flag.Bool("binary", false, "vectors are in the binary word2vec format")
		neighbors   = flag.Int("neighbors", dict.DefaultNeighbors, "nearest neighbours returned per word")
		linesPath   = flag.String("lines", "", "text file with one candidate line per line")
		format      = flag.String("format", "text", "format of the -lines file: "+formatNames())
		query       = flag.String("query", "", "only use lines containing this text")
		maxPairs    = flag.Int("max-pairs", 0, "most candidate pairs to try, 0 for all")
		maxChars    = flag.Int("max-chars", 0, "skip lines longer than this, 0 for no limit")
		timeout     = flag.Duration("timeout", time.Minute, "give up after this long")
		debug       = flag.Bool("debug", false, "log every composition stage")
	)
	flag.Parse()
	if *linesPath == "" {
		fmt.Fprintln(os.Stderr, "-lines is required")
		flag.Usage()
		os.Exit(2)
	}

	source, ok := sources[*format]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format %q, expected one of %s\n", *format, formatNames())
		os.Exit(2)
	}
	var src poem.SequenceSource = poem.FileSource{Path: *linesPath, MaxChars: *maxChars}
	if *format != "text" {
		src = dumpSource{path: *linesPath, source: source, maxChars: *maxChars}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	oracles, err := dict.Load(ctx, dict.Paths{
		CMUDict:       *cmuPath,
		WordNet:       *wordnetPath,
		Vectors:       *vectorsPath,
		VectorsBinary: *binary,
		Neighbors:     *neighbors,
	})
	FatalError(err)

	composer := poem.NewComposer(oracles.Lexicon(), poem.WithMaxPairs(*maxPairs), poem.WithDebug(*debug))
	couplet, err := composer.ComposeFrom(ctx, src, *query)
	FatalError(err)

	fmt.Println(couplet)
	cost := "dropped words"
	if !math.IsInf(couplet.Cost, 0) {
		cost = fmt.Sprintf("%.3f", couplet.Cost)
	}
	fmt.Printf("\ncost: %s, rhyme: %s, lines: %s and %s\n", cost, couplet.Strategy, couplet.IDs[0], couplet.IDs[1])
}

func FatalError(err error) {
	if err != nil {
		fmt.Printf("encountered error: %v\n", err)
		os.Exit(1)
	}
}
