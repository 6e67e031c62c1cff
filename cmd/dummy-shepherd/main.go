// Command dummy-shepherd is the simplest possible reference shepherd: it
// recommends up to 10 items the sheep hasn't seen yet, chosen uniformly at
// random from everything introduced so far, and otherwise ignores the wire
// protocol entirely (it never reads tags or ratings).
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	json "github.com/goccy/go-json"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/shepherd"
)

// feedSize is this shepherd's own convention, not a protocol constraint:
// callers must not assume every Feed carries exactly this many items.
const feedSize = 10

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dummy-shepherd:", err)
		os.Exit(1)
	}
}

func run() error {
	dec := json.NewDecoder(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	items := make(map[ids.ItemID]struct{})
	seen := make(map[ids.SheepID]map[ids.ItemID]struct{})

	for {
		ev, err := shepherd.ReadIncoming(dec)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case ev.BeginEpoch != nil:
			for _, item := range ev.BeginEpoch.Items {
				items[item] = struct{}{}
			}

		case ev.FeedRequest != nil:
			sheepSeen := seen[ev.FeedRequest.Sheep]

			candidates := make([]ids.ItemID, 0, len(items))
			for item := range items {
				if _, already := sheepSeen[item]; !already {
					candidates = append(candidates, item)
				}
			}

			rand.Shuffle(len(candidates), func(i, j int) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			})

			n := feedSize
			if n > len(candidates) {
				n = len(candidates)
			}
			chosen := candidates[:n]

			if sheepSeen == nil {
				sheepSeen = make(map[ids.ItemID]struct{}, n)
				seen[ev.FeedRequest.Sheep] = sheepSeen
			}
			for _, item := range chosen {
				sheepSeen[item] = struct{}{}
			}

			if err := shepherd.WriteFeed(out, chosen); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("dummy-shepherd: flushing feed: %w", err)
			}
		}
	}
}
