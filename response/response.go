// Package response implements the probabilistic rating a sheep gives an
// item, derived purely from their graph distance.
package response

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/nodeflock/shepherdsim/ids"
)

// Rating is a sheep's verdict on one item.
type Rating string

const (
	Positive Rating = "Positive"
	Neutral  Rating = "Neutral"
	Negative Rating = "Negative"
)

// String implements fmt.Stringer for logging.
func (r Rating) String() string {
	return string(r)
}

// PositiveProbability returns p+(d) = 2^-d, the probability a sheep rates
// an item at distance d Positive.
func PositiveProbability(d int64) float64 {
	return math.Exp2(-float64(d))
}

// NeutralProbability returns p0(d) = (9/10)^d, the probability a sheep
// rates an item at distance d Positive-or-Neutral. A prior source computes
// this as distance.powi(9)/distance.powi(10), which reduces to 1/d and is
// inconsistent with the rest of the model (it isn't even bounded by
// PositiveProbability for d>1); that variant is not reproduced here.
func NeutralProbability(d int64) float64 {
	return math.Pow(0.9, float64(d))
}

// Rate draws a single response for a (sheep, item) pair at graph distance
// distance. If reachable is false, distance is ignored and the response is
// unconditionally Negative. logger receives a Debug-level line recording
// the draw; pass zerolog.Nop() to silence it.
func Rate(rng *rand.Rand, sheep ids.SheepID, item ids.ItemID, distance int64, reachable bool, logger zerolog.Logger) Rating {
	if !reachable {
		logger.Debug().
			Stringer("sheep", sheep).
			Stringer("item", item).
			Bool("reachable", false).
			Str("rating", string(Negative)).
			Msg("response drawn")

		return Negative
	}

	pPositive := PositiveProbability(distance)
	pNeutral := NeutralProbability(distance)
	draw := rng.Float64()

	var rating Rating
	switch {
	case draw <= pPositive:
		rating = Positive
	case draw <= pNeutral:
		rating = Neutral
	default:
		rating = Negative
	}

	logger.Debug().
		Stringer("sheep", sheep).
		Stringer("item", item).
		Int64("distance", distance).
		Float64("p_positive", pPositive).
		Float64("p_neutral", pNeutral).
		Float64("draw", draw).
		Str("rating", string(rating)).
		Msg("response drawn")

	return rating
}
