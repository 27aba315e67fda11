package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroceryList(t *testing.T) {
	meals := []MealRecord{
		{Ingredients: "Eggs, spinach"},
		{Ingredients: "eggs,Toast"},
		{Ingredients: "Spinach , avocado, "},
		{Ingredients: ""},
	}

	assert.Equal(t, []GroceryItem{
		{Name: "Eggs", Count: 2},
		{Name: "spinach", Count: 2},
		{Name: "avocado", Count: 1},
		{Name: "Toast", Count: 1},
	}, GroceryList(meals))

	assert.Empty(t, GroceryList(nil))
}
