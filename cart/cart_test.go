package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewandbean/cafe/models"
)

func menuItem(name string, price string) models.MenuItem {
	return models.MenuItem{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestAddMergesByItemAndNote(t *testing.T) {
	espresso := menuItem("Signature Espresso", "3.50")

	var c Cart
	c.Add(espresso, "extra shot")
	c.Add(espresso, "extra shot")

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)

	// same item, different note is a distinct line
	c.Add(espresso, "")
	require.Len(t, c.Lines, 2)
}

func TestRemove(t *testing.T) {
	latte := menuItem("Vanilla Latte", "5.00")

	var c Cart
	c.Add(latte, "")
	c.Add(latte, "")
	c.Remove(latte.ID, "")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	// line is destroyed at quantity zero
	c.Remove(latte.ID, "")
	assert.Empty(t, c.Lines)

	// removing a missing line is a no-op, not an error
	c.Remove(uuid.New(), "oat milk")
	assert.Empty(t, c.Lines)
}

func TestTotalHoldsAfterEveryOperation(t *testing.T) {
	espresso := menuItem("Signature Espresso", "3.50")
	croissant := menuItem("Butter Croissant", "3.25")

	var c Cart
	ops := []func(){
		func() { c.Add(espresso, "") },
		func() { c.Add(croissant, "") },
		func() { c.Add(croissant, "") },
		func() { c.Remove(espresso.ID, "") },
		func() { c.Add(espresso, "") },
	}

	for _, op := range ops {
		op()
		expected := decimal.Zero
		for _, line := range c.Lines {
			require.GreaterOrEqual(t, line.Quantity, 1)
			expected = expected.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		assert.True(t, c.Total().Equal(expected))
	}
}

// Espresso 3.50 x1 plus Croissant 3.25 x2 must total exactly 9.75.
func TestTotalExact(t *testing.T) {
	espresso := menuItem("Signature Espresso", "3.50")
	croissant := menuItem("Butter Croissant", "3.25")

	var c Cart
	c.Add(espresso, "")
	c.Add(croissant, "")
	c.Add(croissant, "")

	assert.Equal(t, "9.75", c.Total().StringFixed(2))
	assert.Equal(t, 3, c.ItemCount())
}

func TestClear(t *testing.T) {
	var c Cart
	c.Add(menuItem("Americano", "3.75"), "")
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Total().IsZero())
}

func TestOrderItems(t *testing.T) {
	matcha := menuItem("Iced Matcha Latte", "5.50")

	var c Cart
	c.Add(matcha, "less ice")
	c.Add(matcha, "less ice")

	items := c.OrderItems()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, items[0].Note)
	assert.Equal(t, "less ice", *items[0].Note)
	assert.Equal(t, "11.00", models.ComputeTotal(items).StringFixed(2))
}
