/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mikeb26/boylstonchessclub-pairings/bcc"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/uschess"
)

// this program exists just to seed the shared http cache with the events
// the bot is about to be asked to pair

func main() {
	bccIDs := flag.Bool("bcc", false, "Arguments are BCC event ids (default: USCF rated event ids)")
	pause := flag.Duration("pause", 2*time.Second, "Pause between fetches")
	envFile := flag.String("env", ".env", "Environment file with the cache settings")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %v [-bcc] [-pause D] [-env FILE] ID...\n",
			os.Args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	cache, err := internal.LoadCacheOptions(*envFile)
	if err != nil {
		log.Fatalf("cacheseed: %v", err)
	}
	bccClient := bcc.NewClient(internal.NewCachedHttpClient(ctx, cache))
	uscfClient := uschess.NewClient(ctx, cache)

	for _, arg := range flag.Args() {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			log.Printf("cacheseed: skipping %q: %v", arg, err)
			continue
		}

		if *bccIDs {
			_, err = bccClient.GetTournament(ctx, id)
		} else {
			_, err = uscfClient.FetchCrossTables(ctx, uschess.EventID(id))
		}
		time.Sleep(*pause) // avoid pegging the origin
		if err != nil {
			// best effort
			log.Printf("cacheseed: %v: %v", id, err)
			continue
		}

		fmt.Printf("seeded %v\n", id)
	}
}
