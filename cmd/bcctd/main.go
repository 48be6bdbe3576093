/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/mikeb26/boylstonchessclub-pairings/api"
	"github.com/mikeb26/boylstonchessclub-pairings/bcc"
	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/uschess"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"pair":     handlePair,
	"finish":   handleFinish,
	"pairings": handlePairings,
	"predict":  handlePredict,
	"uscf":     handleUSCF,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// engineFlags registers the flags shared by every command that runs the
// pairing engine.
func engineFlags(fs *flag.FlagSet) func() []dutch.Option {
	verbose := fs.Bool("v", false, "Log backtracking and relaxation decisions")
	maxSteps := fs.Int("maxsteps", 0, "Limit on search steps (0 for the default)")

	return func() []dutch.Option {
		opts := []dutch.Option{dutch.WithVerbose(*verbose)}
		if *maxSteps > 0 {
			opts = append(opts, dutch.WithMaxSteps(*maxSteps))
		}
		return opts
	}
}

func readInput(path string, dst any) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Error opening %v: %v", path, err)
		}
		defer f.Close()
		in = f
	}

	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.Fatalf("Error parsing %v: %v", path, err)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
}

func handlePair(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	file := fs.String("f", "-", "Pairing request file ('-' for stdin)")
	options := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var req api.PairingRequest
	readInput(*file, &req)

	resp, err := api.Pair(ctx, &req, options()...)
	if err != nil {
		log.Fatalf("Error pairing: %v", err)
	}
	printJSON(resp)
}

func handleFinish(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("finish", flag.ExitOnError)
	file := fs.String("f", "-", "Results request file ('-' for stdin)")
	options := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var req api.ResultsRequest
	readInput(*file, &req)

	resp, err := api.Finish(ctx, &req, options()...)
	if err != nil {
		log.Fatalf("Error recording results: %v", err)
	}
	printJSON(resp)
}

func newBCCClient(ctx context.Context) *bcc.Client {
	return bcc.NewClient(internal.NewCachedHttpClient(ctx,
		internal.CacheOptions{MaxAge: time.Minute}))
}

func handlePairings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pairings", flag.ExitOnError)
	eventID := fs.Int("event", 0, "BCC event ID to fetch pairings for")
	options := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid -event ID.")
		fs.Usage()
		os.Exit(1)
	}

	tourney, err := newBCCClient(ctx).GetTournament(ctx, int64(*eventID),
		options()...)
	if err != nil {
		log.Fatalf("Error fetching pairings for event %d: %v", *eventID, err)
	}
	fmt.Print(bcc.BuildPairingsOutput(tourney))
}

func handlePredict(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	eventID := fs.Int("event", 0, "BCC event ID to predict round one for")
	black := fs.Bool("black", false,
		"Give the top player black on the first board")
	options := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid -event ID.")
		fs.Usage()
		os.Exit(1)
	}

	opts := options()
	if *black {
		opts = append(opts, dutch.WithInitialColour(dutch.Black))
	}

	detail, err := newBCCClient(ctx).GetEventDetail(ctx, int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching event %d: %v", *eventID, err)
	}
	tourney, err := bcc.PredictTournament(ctx, detail, opts...)
	if err != nil {
		log.Fatalf("Error predicting event %d: %v", *eventID, err)
	}
	fmt.Print(bcc.BuildPairingsOutput(tourney))
}

func handleUSCF(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("uscf", flag.ExitOnError)
	tid := fs.Int("event", 0, "USCF rated event ID")
	section := fs.String("section", "",
		"Section to predict the next round for (default: show crosstables)")
	rounds := fs.Int("rounds", 0, "Total rounds of the event, if known")
	options := engineFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *tid <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid -event ID.")
		fs.Usage()
		os.Exit(1)
	}

	client := uschess.NewClient(ctx, internal.CacheOptions{MaxAge: time.Minute})
	tourney, err := client.FetchCrossTables(ctx, uschess.EventID(*tid))
	if err != nil {
		log.Fatalf("Error fetching cross tables %d: %v", *tid, err)
	}

	if *section == "" {
		for _, xt := range tourney.CrossTables {
			fmt.Print(uschess.BuildOneCrossTableOutput(xt,
				len(tourney.CrossTables) > 1))
		}
		return
	}

	xt, err := tourney.Section(*section)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	opts := append(options(), dutch.WithTotalRounds(*rounds))
	prediction, err := uschess.PredictNextRound(ctx, xt, opts...)
	if err != nil {
		log.Fatalf("Error predicting %v: %v", xt.SectionName, err)
	}
	fmt.Print(uschess.BuildPredictionOutput(prediction))
}
