package shepherd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nodeflock/shepherdsim/ids"
)

// Channel is a live connection to one shepherd subprocess: a piped stdin
// encoder and a piped stdout decoder, kept open for the run's lifetime.
//
// Concurrency: a Channel is not safe for concurrent use. The driver talks to
// shepherds one at a time and in a fixed order, so no internal locking is
// needed here.
type Channel struct {
	id     ids.ShepherdID
	runTag uuid.UUID
	path   string

	cmd    *exec.Cmd
	stdinW *bufio.Writer
	stdinC io.Closer
	dec    *json.Decoder

	logger zerolog.Logger
}

// Spawn starts the shepherd executable at path with args, piping its stdin
// and stdout. Failure to spawn is always an ErrIO and must be treated as
// fatal to the run: the caller should not retry with the same id.
func Spawn(id ids.ShepherdID, path string, args []string, logger zerolog.Logger) (*Channel, error) {
	runTag := uuid.New()

	cmd := exec.Command(path, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("shepherd #%d: opening stdin for %s: %w: %w", id, path, ErrIO, err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("shepherd #%d: opening stdout for %s: %w: %w", id, path, ErrIO, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("shepherd #%d: starting %s: %w: %w", id, path, ErrIO, err)
	}

	logger.Info().
		Int("shepherd", int(id)).
		Stringer("run_tag", runTag).
		Str("path", path).
		Msg("shepherd spawned")

	return &Channel{
		id:     id,
		runTag: runTag,
		path:   path,
		cmd:    cmd,
		stdinW: bufio.NewWriter(stdin),
		stdinC: stdin,
		dec:    json.NewDecoder(stdout),
		logger: logger.With().Int("shepherd", int(id)).Stringer("run_tag", runTag).Logger(),
	}, nil
}

// write encodes v as one JSON value and flushes immediately, so a shepherd
// blocked on a read makes progress as soon as this call returns.
func (c *Channel) write(what string, v interface{}) error {
	if err := json.NewEncoder(c.stdinW).Encode(v); err != nil {
		return fmt.Errorf("shepherd #%d: writing %s: %w: %w", c.id, what, ErrIO, err)
	}

	if err := c.stdinW.Flush(); err != nil {
		return fmt.Errorf("shepherd #%d: flushing %s: %w: %w", c.id, what, ErrIO, err)
	}

	return nil
}

// BeginEpoch announces a new epoch's tag and item population.
func (c *Channel) BeginEpoch(epoch ids.EpochID, tags []ids.TagID, items []ids.ItemID) error {
	return c.write("BeginEpoch", beginEpochWire{
		Kind: "BeginEpoch",
		ID:   epoch,
		Data: beginEpochData{Tags: tags, Items: items},
	})
}

// SheepIntroduction tells the shepherd about one sheep and its tag
// neighborhood, once per sheep per epoch.
func (c *Channel) SheepIntroduction(sheep ids.SheepID, associatedTags []ids.TagID) error {
	return c.write("SheepIntroduction", sheepIntroductionWire{
		Kind:           "SheepIntroduction",
		Sheep:          sheep,
		AssociatedTags: associatedTags,
	})
}

// FeedRequest asks the shepherd to recommend items for sheep. The caller
// must read the reply with ReadFeed before sending any further request to
// this channel: requests and replies are strictly one-for-one, in order.
func (c *Channel) FeedRequest(sheep ids.SheepID) error {
	return c.write("FeedRequest", feedRequestWire{Kind: "FeedRequest", Sheep: sheep})
}

// SendResponses reports the sheep's ratings of the items it was just fed.
func (c *Channel) SendResponses(sheep ids.SheepID, responses []Response) error {
	return c.write("Responses", responsesWire{
		Kind:      "Responses",
		Sheep:     sheep,
		Responses: responses,
	})
}

// ReadFeed blocks for the shepherd's reply to the most recent FeedRequest.
// A child that closes its stdout here, or emits a value that isn't a Feed
// object, is protocol-faulty: ReadFeed reports ErrProtocol rather than
// treating either condition as an empty feed.
func (c *Channel) ReadFeed() ([]ids.ItemID, error) {
	var raw map[string]json.RawMessage
	if err := c.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("shepherd #%d: reading feed: %w: child closed output", c.id, ErrProtocol)
		}

		return nil, fmt.Errorf("shepherd #%d: reading feed: %w: %w", c.id, ErrProtocol, err)
	}

	body, ok := raw["Feed"]
	if !ok {
		return nil, fmt.Errorf("shepherd #%d: reading feed: %w: value is not a Feed object", c.id, ErrProtocol)
	}

	var items []ids.ItemID
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("shepherd #%d: reading feed: %w: %w", c.id, ErrProtocol, err)
	}

	c.logger.Debug().Int("n_items", len(items)).Msg("feed received")

	return items, nil
}

// Stop closes the shepherd's stdin and waits for it to exit. This is the
// only shutdown path: stop is cooperative, not a hard kill — a child that
// refuses to exit must be terminated by the host, outside this package's
// scope.
func (c *Channel) Stop() error {
	if err := c.stdinC.Close(); err != nil {
		return fmt.Errorf("shepherd #%d: closing stdin: %w: %w", c.id, ErrIO, err)
	}

	if err := c.cmd.Wait(); err != nil {
		return fmt.Errorf("shepherd #%d: waiting for exit: %w: %w", c.id, ErrIO, err)
	}

	c.logger.Info().Msg("shepherd stopped")

	return nil
}
