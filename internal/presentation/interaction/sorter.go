package interaction

import (
	"sort"
	"strings"

	"github.com/raidsync/go-raid-sync/internal/core/model"
)

// SortField represents the field to sort fights by
type SortField int

const (
	SortByTime SortField = iota
	SortByDuration
	SortByName
)

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// FightSorter handles sorting of fights
type FightSorter struct {
	field SortField
	order SortOrder
}

// NewFightSorter creates a sorter with the pull-order default
func NewFightSorter() *FightSorter {
	return &FightSorter{
		field: SortByTime,
		order: SortAscending,
	}
}

// SetField changes the sort field
func (s *FightSorter) SetField(field SortField) {
	s.field = field
}

// SetOrder changes the sort order
func (s *FightSorter) SetOrder(order SortOrder) {
	s.order = order
}

// Sort sorts the fights based on current settings
func (s *FightSorter) Sort(fights []model.Fight) {
	sort.SliceStable(fights, func(i, j int) bool {
		var less bool

		switch s.field {
		case SortByTime:
			less = fights[i].StartMS < fights[j].StartMS
		case SortByDuration:
			less = fights[i].DurationSec() < fights[j].DurationSec()
		case SortByName:
			less = fights[i].Name < fights[j].Name
		}

		if s.order == SortDescending {
			return !less
		}
		return less
	})
}

// ParseSortField maps a command-line sort name to a field
func ParseSortField(name string) (SortField, bool) {
	switch strings.ToLower(name) {
	case "", "time":
		return SortByTime, true
	case "duration":
		return SortByDuration, true
	case "name":
		return SortByName, true
	default:
		return SortByTime, false
	}
}
