package domain

import (
	"sort"
	"strings"

	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// GroceryItem is an ingredient and how many meals used it.
type GroceryItem struct {
	Name  string
	Count int
}

// GroceryList aggregates the ingredients of meals. Names are deduplicated
// case-insensitively and keep their first-seen spelling. Items are ordered
// by count descending, then by name.
func GroceryList(meals []MealRecord) []GroceryItem {
	index := map[string]int{}
	items := []GroceryItem{}
	for _, m := range meals {
		for _, ingredient := range tracking.SplitIngredients(m.Ingredients) {
			key := strings.ToLower(ingredient)
			if i, ok := index[key]; ok {
				items[i].Count++
				continue
			}
			index[key] = len(items)
			items = append(items, GroceryItem{Name: ingredient, Count: 1})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}
