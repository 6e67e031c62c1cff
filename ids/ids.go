// Package ids defines the typed node identifiers shared between simgraph,
// shepherd, and simulation.
//
// Every node in the simulation graph is either a Tag, a Sheep, or an Item.
// The dense integer index backing a node is the same index space the graph
// storage uses internally, but the *kind* of a node is fixed at creation and
// is carried in the Go type itself: a SheepID and an ItemID are distinct
// types even though both wrap a plain int, so passing one where the other is
// expected is a compile error rather than a runtime surprise.
package ids

import "fmt"

// Kind enumerates the three node kinds tracked by the simulation graph.
type Kind int

const (
	// KindTag marks a labelling node; edges between tags encode semantic
	// proximity.
	KindTag Kind = iota

	// KindSheep marks a simulated user; its preferences are its tag
	// neighborhood.
	KindSheep

	// KindItem marks a piece of content; its meaning is its tag
	// neighborhood.
	KindItem
)

// String renders a Kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindSheep:
		return "sheep"
	case KindItem:
		return "item"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TagKind, SheepKind, and ItemKind are marker types used only as GraphID
// type parameters; they are never instantiated by callers. They exist so
// the Go type system can distinguish a TagID from a SheepID from an ItemID
// at compile time.
type TagKind struct{}
type SheepKind struct{}
type ItemKind struct{}

// NodeKind associates a marker type with the Kind it represents and seals
// the set of valid GraphID type parameters against external implementers:
// the interface is exported so other packages can use it as a generic
// constraint, but its sole method is unexported so only TagKind, SheepKind,
// and ItemKind (defined in this package) can ever satisfy it.
type NodeKind interface {
	nodeKindValue() Kind
}

func (TagKind) nodeKindValue() Kind   { return KindTag }
func (SheepKind) nodeKindValue() Kind { return KindSheep }
func (ItemKind) nodeKindValue() Kind  { return KindItem }

// itemOrSheep is implemented only by SheepKind and ItemKind, so functions
// that accept "a sheep or an item" (e.g. AssociatedTags) cannot be called
// with a TagID.
type itemOrSheep interface {
	NodeKind
	itemOrSheepMarker()
}

func (SheepKind) itemOrSheepMarker() {}
func (ItemKind) itemOrSheepMarker()  {}

// GraphID is a dense non-negative integer index into the simulation graph,
// tagged at the type level with the kind of node it refers to.
type GraphID[K NodeKind] struct {
	index int
}

// NewGraphID wraps a raw dense index as a GraphID[K]. Callers outside
// simgraph should not normally need this; simgraph.CreateNodes is the
// usual source of fresh GraphIDs.
func NewGraphID[K NodeKind](index int) GraphID[K] {
	return GraphID[K]{index: index}
}

// Index returns the dense non-negative integer backing this id.
func (g GraphID[K]) Index() int { return g.index }

// Kind returns the node kind this id was created with.
func (g GraphID[K]) Kind() Kind {
	var zero K
	return zero.nodeKindValue()
}

// String renders the id as "<kind>#<index>" for logging.
func (g GraphID[K]) String() string {
	return fmt.Sprintf("%s#%d", g.Kind(), g.index)
}

// MarshalJSON serializes a GraphID as its bare integer index: wire
// consumers see a plain number, never an object wrapping one.
func (g GraphID[K]) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", g.index)), nil
}

// UnmarshalJSON parses a bare integer index into a GraphID.
func (g *GraphID[K]) UnmarshalJSON(data []byte) error {
	var n int
	if _, err := fmt.Sscanf(string(data), "%d", &n); err != nil {
		return fmt.Errorf("ids: decoding graph id: %w", err)
	}
	g.index = n

	return nil
}

// TagID identifies a tag node.
type TagID = GraphID[TagKind]

// SheepID identifies a sheep node.
type SheepID = GraphID[SheepKind]

// ItemID identifies an item node.
type ItemID = GraphID[ItemKind]

// NewTagID wraps a raw dense index as a TagID.
func NewTagID(index int) TagID { return NewGraphID[TagKind](index) }

// NewSheepID wraps a raw dense index as a SheepID.
func NewSheepID(index int) SheepID { return NewGraphID[SheepKind](index) }

// NewItemID wraps a raw dense index as an ItemID.
func NewItemID(index int) ItemID { return NewGraphID[ItemKind](index) }

// IsItemOrSheep constrains generic helpers (e.g. simgraph.ConnectExtremities)
// to only the two kinds that have tag neighborhoods.
type IsItemOrSheep interface {
	itemOrSheep
}

// compile-time assertions that SheepKind/ItemKind satisfy IsItemOrSheep and
// TagKind does not carry the marker (TagKind intentionally has no
// itemOrSheepMarker method).
var (
	_ IsItemOrSheep = SheepKind{}
	_ IsItemOrSheep = ItemKind{}
)

// Ref is satisfied by any GraphID[K] regardless of kind; it lets code that
// doesn't care which kind it's holding (e.g. shortest-path lookups) accept
// a TagID, SheepID, or ItemID interchangeably.
type Ref interface {
	Kind() Kind
	Index() int
}

// EpochID is a monotonically non-decreasing counter identifying a
// simulation epoch, starting at 0 for the seeding epoch.
type EpochID int

// ShepherdID is an index into the simulation's shepherd roster, assigned on
// registration.
type ShepherdID int
