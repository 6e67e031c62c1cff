package shepherd

import (
	json "github.com/goccy/go-json"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/response"
)

// Outgoing wire shapes (simulation -> shepherd). Field names are part of the
// protocol and must not be renamed.

type beginEpochData struct {
	Tags  []ids.TagID  `json:"tags"`
	Items []ids.ItemID `json:"items"`
}

type beginEpochWire struct {
	Kind string         `json:"kind"`
	ID   ids.EpochID    `json:"id"`
	Data beginEpochData `json:"data"`
}

type sheepIntroductionWire struct {
	Kind           string      `json:"kind"`
	Sheep          ids.SheepID `json:"sheep"`
	AssociatedTags []ids.TagID `json:"associated_tags"`
}

type feedRequestWire struct {
	Kind  string      `json:"kind"`
	Sheep ids.SheepID `json:"sheep"`
}

// Response is one sheep's rating of one item, as carried inside a Responses
// event. Hops is nil when the pair is unreachable (the wire's optional
// trailing element is omitted entirely rather than sent as a JSON null).
type Response struct {
	Item   ids.ItemID
	Rating response.Rating
	Hops   *int
}

// MarshalJSON renders a Response as the wire's heterogeneous tuple:
// [item, rating] or [item, rating, hops].
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Hops != nil {
		return json.Marshal([3]interface{}{r.Item, r.Rating, *r.Hops})
	}

	return json.Marshal([2]interface{}{r.Item, r.Rating})
}

type responsesWire struct {
	Kind      string      `json:"kind"`
	Sheep     ids.SheepID `json:"sheep"`
	Responses []Response  `json:"responses"`
}

// feedWire is the sole incoming shape (shepherd -> simulation): a reply to a
// FeedRequest. "Feed" is the literal, capitalized field name the protocol
// requires.
type feedWire struct {
	Feed []ids.ItemID `json:"Feed"`
}
