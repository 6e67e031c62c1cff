package shepherd

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/nodeflock/shepherdsim/ids"
)

// The types in this file support writing a reference shepherd: a program
// on the *receiving* end of the wire protocol, reading BeginEpoch /
// SheepIntroduction / FeedRequest events and replying with Feed events.
// Channel (in channel.go) is the driver's side of the same protocol.

// BeginEpoch is the decoded form of an incoming BeginEpoch event.
type BeginEpoch struct {
	Epoch ids.EpochID
	Tags  []ids.TagID
	Items []ids.ItemID
}

// SheepIntroduction is the decoded form of an incoming SheepIntroduction event.
type SheepIntroduction struct {
	Sheep          ids.SheepID
	AssociatedTags []ids.TagID
}

// FeedRequest is the decoded form of an incoming FeedRequest event.
type FeedRequest struct {
	Sheep ids.SheepID
}

// ResponsesEvent is the decoded form of an incoming Responses event. Only
// the sheep field is surfaced: a reference shepherd is free to ignore how
// its own feeds were rated, and the wire's tuple-shaped responses list has
// no natural unmarshaled form since Response only marshals (see events.go).
type ResponsesEvent struct {
	Sheep ids.SheepID
}

// IncomingEvent is a decoded simulation->shepherd event: exactly one field
// is non-nil, naming which shape was received.
type IncomingEvent struct {
	BeginEpoch        *BeginEpoch
	SheepIntroduction *SheepIntroduction
	FeedRequest       *FeedRequest
	Responses         *ResponsesEvent
}

type kindPeek struct {
	Kind string `json:"kind"`
}

// ReadIncoming decodes the next event from dec. It returns io.EOF unchanged
// when the peer has closed its output with no partial value pending;
// anything else wrong with the bytes read is reported as ErrProtocol.
func ReadIncoming(dec *json.Decoder) (IncomingEvent, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return IncomingEvent{}, io.EOF
		}

		return IncomingEvent{}, fmt.Errorf("shepherd: decoding incoming event: %w: %w", ErrProtocol, err)
	}

	var peek kindPeek
	if err := json.Unmarshal(raw, &peek); err != nil {
		return IncomingEvent{}, fmt.Errorf("shepherd: decoding incoming event kind: %w: %w", ErrProtocol, err)
	}

	switch peek.Kind {
	case "BeginEpoch":
		var w beginEpochWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return IncomingEvent{}, fmt.Errorf("shepherd: decoding BeginEpoch: %w: %w", ErrProtocol, err)
		}

		return IncomingEvent{BeginEpoch: &BeginEpoch{Epoch: w.ID, Tags: w.Data.Tags, Items: w.Data.Items}}, nil

	case "SheepIntroduction":
		var w sheepIntroductionWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return IncomingEvent{}, fmt.Errorf("shepherd: decoding SheepIntroduction: %w: %w", ErrProtocol, err)
		}

		return IncomingEvent{SheepIntroduction: &SheepIntroduction{Sheep: w.Sheep, AssociatedTags: w.AssociatedTags}}, nil

	case "FeedRequest":
		var w feedRequestWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return IncomingEvent{}, fmt.Errorf("shepherd: decoding FeedRequest: %w: %w", ErrProtocol, err)
		}

		return IncomingEvent{FeedRequest: &FeedRequest{Sheep: w.Sheep}}, nil

	case "Responses":
		var w struct {
			Sheep ids.SheepID `json:"sheep"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return IncomingEvent{}, fmt.Errorf("shepherd: decoding Responses: %w: %w", ErrProtocol, err)
		}

		return IncomingEvent{Responses: &ResponsesEvent{Sheep: w.Sheep}}, nil

	default:
		return IncomingEvent{}, fmt.Errorf("shepherd: decoding incoming event: %w: unrecognized kind %q", ErrProtocol, peek.Kind)
	}
}

// WriteFeed encodes a Feed reply (the protocol's sole incoming-to-the-
// simulation shape) to w. Callers that wrap w in a bufio.Writer must flush
// it themselves afterward, mirroring the driver side's flush-after-write
// rule.
func WriteFeed(w io.Writer, items []ids.ItemID) error {
	if err := json.NewEncoder(w).Encode(feedWire{Feed: items}); err != nil {
		return fmt.Errorf("shepherd: writing feed: %w: %w", ErrIO, err)
	}

	return nil
}
