// Command tagged-shepherd is a reference shepherd backed by a SQL-tracked
// seen-set instead of an in-memory one (modernc.org/sqlite). The BeginEpoch
// event only ever carries bare item ids, not item-tag pairs, so this
// shepherd can't filter by tag overlap; it recommends any unseen item,
// same as the dummy shepherd, but demonstrates persisting state through a
// real SQL schema rather than Go maps.
package main

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/shepherd"
)

const feedSize = 10

const schema = `
CREATE TABLE items (
	id INTEGER PRIMARY KEY
);
CREATE TABLE sheep_tags (
	sheep_id INTEGER NOT NULL,
	tag      INTEGER NOT NULL,
	PRIMARY KEY (sheep_id, tag)
);
CREATE TABLE seen (
	sheep_id INTEGER NOT NULL,
	item_id  INTEGER NOT NULL,
	PRIMARY KEY (sheep_id, item_id)
);
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tagged-shepherd:", err)
		os.Exit(1)
	}
}

// databasePath reads a trailing -d/--database value out of os.Args, the
// same argument a host CLI may forward to this binary. Absent, it falls
// back to an in-memory database.
func databasePath(args []string) string {
	for i, arg := range args {
		if (arg == "-d" || arg == "--database") && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ":memory:"
}

func run() error {
	db, err := sql.Open("sqlite", databasePath(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	dec := json.NewDecoder(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

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
			if err := recordItems(db, ev.BeginEpoch.Items); err != nil {
				return err
			}

		case ev.SheepIntroduction != nil:
			if err := recordSheepTags(db, ev.SheepIntroduction); err != nil {
				return err
			}

		case ev.FeedRequest != nil:
			chosen, err := buildFeed(db, ev.FeedRequest.Sheep)
			if err != nil {
				return err
			}

			if err := shepherd.WriteFeed(out, chosen); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("flushing feed: %w", err)
			}
		}
	}
}

func recordItems(db *sql.DB, items []ids.ItemID) error {
	for _, item := range items {
		if _, err := db.Exec(`INSERT OR IGNORE INTO items (id) VALUES (?)`, item.Index()); err != nil {
			return fmt.Errorf("recording item %s: %w", item, err)
		}
	}

	return nil
}

func recordSheepTags(db *sql.DB, intro *shepherd.SheepIntroduction) error {
	for _, tag := range intro.AssociatedTags {
		if _, err := db.Exec(
			`INSERT OR IGNORE INTO sheep_tags (sheep_id, tag) VALUES (?, ?)`,
			intro.Sheep.Index(), tag.Index(),
		); err != nil {
			return fmt.Errorf("recording sheep %s tag %s: %w", intro.Sheep, tag, err)
		}
	}

	return nil
}

// buildFeed selects up to feedSize items this sheep hasn't been shown yet
// and marks them seen. Selection ignores tag overlap (see package doc) but
// still exercises a real join-based unseen-item query against sqlite.
func buildFeed(db *sql.DB, sheep ids.SheepID) ([]ids.ItemID, error) {
	rows, err := db.Query(`
		SELECT id FROM items
		WHERE NOT EXISTS (
			SELECT 1 FROM seen WHERE seen.sheep_id = ? AND seen.item_id = items.id
		)`, sheep.Index())
	if err != nil {
		return nil, fmt.Errorf("querying unseen items: %w", err)
	}
	defer rows.Close()

	var pool []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning candidate item: %w", err)
		}
		pool = append(pool, id)
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := feedSize
	if n > len(pool) {
		n = len(pool)
	}
	chosen := pool[:n]

	out := make([]ids.ItemID, 0, len(chosen))
	for _, id := range chosen {
		if _, err := db.Exec(`INSERT OR IGNORE INTO seen (sheep_id, item_id) VALUES (?, ?)`, sheep.Index(), id); err != nil {
			return nil, fmt.Errorf("marking item %d seen: %w", id, err)
		}
		out = append(out, ids.NewItemID(id))
	}

	return out, nil
}
