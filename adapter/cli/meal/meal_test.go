package meal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/adapter/cli/meal"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func TestMealCommands(t *testing.T) {
	clitest.Setup(t)

	out := clitest.MustRun(t, meal.NewCmd(), "meal", "log", "Oatmeal",
		"--type", "breakfast", "--calories", "350", "--protein", "12",
		"--ingredients", "oats, milk, banana")
	assert.Contains(t, out, "Logged breakfast: Oatmeal")

	var planned commands.LogMealResult
	clitest.RunJSON(t, &planned, meal.NewCmd(), "meal", "log", "Stir fry",
		"--type", "dinner", "--at", "2026-03-11 19:30", "--planned")
	require.NotEmpty(t, planned.MealID)

	var meals []queries.MealDTO
	clitest.RunJSON(t, &meals, meal.NewCmd(), "meal", "list")
	require.Len(t, meals, 2)

	var dinner queries.MealDTO
	for _, m := range meals {
		if m.ID == planned.MealID {
			dinner = m
		}
	}
	assert.False(t, dinner.Completed)

	out = clitest.MustRun(t, meal.NewCmd(), "meal", "complete", planned.MealID.String())
	assert.Contains(t, out, "Meal marked as eaten.")

	clitest.RunJSON(t, &meals, meal.NewCmd(), "meal", "list", "--type", "dinner")
	require.Len(t, meals, 1)
	assert.True(t, meals[0].Completed)
}

func TestMealLog_RejectsBadInput(t *testing.T) {
	clitest.Setup(t)

	_, err := clitest.Run(t, meal.NewCmd(), "meal", "log", "Toast", "--type", "brunch")
	assert.Error(t, err)

	_, err = clitest.Run(t, meal.NewCmd(), "meal", "log", "Toast", "--at", "yesterday")
	assert.Error(t, err)

	_, err = clitest.Run(t, meal.NewCmd(), "meal", "complete", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid meal ID")
}
