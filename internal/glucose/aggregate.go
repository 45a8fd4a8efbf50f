package glucose

import (
	"math"
	"sort"

	"github.com/edibulb/glucocoach/internal/domain"
)

// SortChronological returns a copy of the readings sorted ascending by
// (date, id). Id breaks ties for same-day entries, since the time slot
// alone does not order a day; insertion order does.
func SortChronological(readings []domain.Reading) []domain.Reading {
	items := make([]domain.Reading, len(readings))
	copy(items, readings)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// Aggregate reduces a window of readings to its average and largest spike.
// The window is re-sorted chronologically first. Total on any input: an
// empty window yields a zero average and an empty spike.
func Aggregate(readings []domain.Reading) domain.Aggregate {
	items := SortChronological(readings)

	return domain.Aggregate{
		Average: average(items),
		Spike:   maxSpike(items),
	}
}

func average(items []domain.Reading) int {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, r := range items {
		sum += r.Value
	}
	return int(math.Round(float64(sum) / float64(len(items))))
}

// maxSpike scans adjacent pairs once, keeping the largest strictly positive
// increase. A flat or decreasing series never reports a spike.
func maxSpike(items []domain.Reading) domain.Spike {
	spike := domain.Spike{}
	for i := 1; i < len(items); i++ {
		d := items[i].Value - items[i-1].Value
		if d > spike.Delta {
			from, to := items[i-1], items[i]
			spike = domain.Spike{Delta: d, From: &from, To: &to}
		}
	}
	return spike
}
