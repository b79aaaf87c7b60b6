// Package ratings derives the per-restaurant aggregates the views display.
// Nothing here is persisted; every value is recomputed from fetched rows.
package ratings

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
)

const MaxStars = 5

type Stats struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Mean is sum/len, or 0 for no ratings.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func Of(list []reviews.Review) Stats {
	values := make([]int, len(list))
	for i, r := range list {
		values[i] = r.Rating
	}
	return Stats{Average: Mean(values), Count: len(values)}
}

// Stars is the number of filled stars for an average: rounded, clamped to [0,5].
func Stars(average float64) int {
	n := int(math.Round(average))
	if n < 0 {
		return 0
	}
	if n > MaxStars {
		return MaxStars
	}
	return n
}

// Summary renders "4.0 (3 reviews)".
func (s Stats) Summary() string {
	noun := "reviews"
	if s.Count == 1 {
		noun = "review"
	}
	return fmt.Sprintf("%.1f (%d %s)", s.Average, s.Count, noun)
}

// Ranked is a restaurant with its aggregate.
type Ranked struct {
	restaurants.Restaurant
	Stats
}

// Rank attaches stats to every restaurant and orders them by average rating,
// highest first. Restaurants with equal averages keep their input order.
func Rank(list []restaurants.Restaurant, pairs []reviews.Rating) []Ranked {
	byRestaurant := make(map[string][]int, len(list))
	for _, p := range pairs {
		byRestaurant[p.RestaurantID] = append(byRestaurant[p.RestaurantID], p.Rating)
	}

	ranked := make([]Ranked, len(list))
	for i, rest := range list {
		values := byRestaurant[rest.ID]
		ranked[i] = Ranked{
			Restaurant: rest,
			Stats:      Stats{Average: Mean(values), Count: len(values)},
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Average > ranked[j].Average
	})
	return ranked
}

// Filter keeps restaurants whose name, cuisine or city contains term,
// ignoring case. An empty term keeps everything.
func Filter(list []Ranked, term string) []Ranked {
	if term == "" {
		return list
	}
	needle := strings.ToLower(term)

	out := make([]Ranked, 0, len(list))
	for _, r := range list {
		if Matches(r.Restaurant, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Matches expects needle already lowercased.
func Matches(r restaurants.Restaurant, needle string) bool {
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Cuisine), needle) ||
		strings.Contains(strings.ToLower(r.City), needle)
}

// Remove drops the review with the given id from list and returns the
// remaining reviews with their recomputed stats. The input slice is not modified.
func Remove(list []reviews.Review, reviewID string) ([]reviews.Review, Stats) {
	remaining := make([]reviews.Review, 0, len(list))
	for _, r := range list {
		if r.ID != reviewID {
			remaining = append(remaining, r)
		}
	}
	return remaining, Of(remaining)
}
