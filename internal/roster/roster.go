// Package roster holds the rider number to name tables a results document is
// resolved against. Rosters are immutable once built.
package roster

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Roster maps rider numbers to display names for one season.
type Roster struct {
	season string
	name   string
	riders map[string]string
	ids    []string
}

// New copies riders into an immutable Roster.
func New(season, name string, riders map[string]string) *Roster {
	r := &Roster{
		season: season,
		name:   name,
		riders: maps.Clone(riders),
		ids:    slices.Collect(maps.Keys(riders)),
	}
	if r.riders == nil {
		r.riders = map[string]string{}
	}
	slices.SortFunc(r.ids, compareIDs)
	return r
}

// compareIDs orders rider numbers numerically ("4" before "12").
func compareIDs(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil && ai != bi {
		return ai - bi
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *Roster) Season() string { return r.season }

// Title is the human name of the roster, falling back to the season.
func (r *Roster) Title() string {
	if r.name != "" {
		return r.name
	}
	return r.season
}

func (r *Roster) Len() int { return len(r.ids) }

// IDs returns rider numbers in numeric order. The slice is a copy.
func (r *Roster) IDs() []string {
	return slices.Clone(r.ids)
}

// Name resolves a rider number.
func (r *Roster) Name(id string) (string, bool) {
	n, ok := r.riders[id]
	return n, ok
}

func (r *Roster) Has(id string) bool {
	_, ok := r.riders[id]
	return ok
}

// Label is the legend text for a rider: "[89] Jorge Martin".
// Unknown ids keep the bracketed number alone.
func (r *Roster) Label(id string) string {
	if n, ok := r.riders[id]; ok {
		return fmt.Sprintf("[%s] %s", id, n)
	}
	return fmt.Sprintf("[%s]", id)
}
