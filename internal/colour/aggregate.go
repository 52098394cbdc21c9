package colour

import (
	"fmt"
	"slices"
)

// CanonicalMap maps every observed colour to the representative of the
// cluster it was folded into. Representatives map to themselves.
type CanonicalMap map[RGB]RGB

// Aggregation is the result of folding a histogram into canonical colours.
type Aggregation struct {
	// Colours holds the canonical colours with their accumulated counts,
	// in insertion order: white, black, then each promoted colour.
	Colours []Count

	// Canonical maps each histogram colour to its representative.
	Canonical CanonicalMap
}

// Aggregate greedily merges histogram entries into canonical colours.
//
// Entries are processed from most to least frequent (ties keep input
// order), so the most prominent shade of a group becomes its
// representative. A colour closer than minDistance to an existing canonical
// colour is folded into the nearest one; when several are equally near,
// the earliest inserted wins. Otherwise it is promoted to a canonical
// colour of its own. White and black are always seeded first.
func Aggregate(counts []Count, minDistance float64) (*Aggregation, error) {
	return aggregate(counts, minDistance, Distance)
}

func aggregate(counts []Count, minDistance float64, distance func(a, b RGB) float64) (*Aggregation, error) {
	sorted := slices.Clone(counts)
	slices.SortStableFunc(sorted, func(a, b Count) int {
		return b.N - a.N
	})

	agg := &Aggregation{
		Colours:   []Count{{Colour: White}, {Colour: Black}},
		Canonical: CanonicalMap{White: White, Black: Black},
	}
	// position of each canonical colour in agg.Colours
	position := map[RGB]int{White: 0, Black: 1}

	for _, entry := range sorted {
		if entry.N < 0 {
			return nil, fmt.Errorf("negative pixel count %d for %s", entry.N, entry.Colour)
		}

		// Exact hits skip the distance search. A colour listed twice stays
		// in its cluster.
		if rep, ok := agg.Canonical[entry.Colour]; ok {
			agg.Colours[position[rep]].N += entry.N
			continue
		}

		nearest, d := 0, distance(entry.Colour, agg.Colours[0].Colour)
		for i := 1; i < len(agg.Colours); i++ {
			if di := distance(entry.Colour, agg.Colours[i].Colour); di < d {
				nearest, d = i, di
			}
		}

		if d < minDistance {
			agg.Colours[nearest].N += entry.N
			agg.Canonical[entry.Colour] = agg.Colours[nearest].Colour
			continue
		}

		position[entry.Colour] = len(agg.Colours)
		agg.Colours = append(agg.Colours, entry)
		agg.Canonical[entry.Colour] = entry.Colour
	}

	return agg, nil
}

// Total returns the number of pixels accounted for by the aggregation.
func (a *Aggregation) Total() int {
	return TotalPixels(a.Colours)
}
