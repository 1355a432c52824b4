// Package cart implements the customer's line-item cart. A line is keyed
// by (menu item, customization note): the same item with different notes
// stays on separate lines, identical keys merge by summing quantity.
package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewandbean/cafe/models"
)

type Line struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// Store persists one cart per owner. Saves happen synchronously after
// every mutation so a reload never loses the last committed state.
type Store interface {
	Load(ctx context.Context, ownerID uuid.UUID) (Cart, error)
	Save(ctx context.Context, ownerID uuid.UUID, c Cart) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// Add increments the matching line or appends a new one with quantity 1.
func (c *Cart) Add(item models.MenuItem, note string) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == item.ID && c.Lines[i].Note == note {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
		Note:       note,
	})
}

// Remove decrements the matching line, dropping it when the quantity hits
// zero. Removing a line that does not exist is a no-op.
func (c *Cart) Remove(menuItemID uuid.UUID, note string) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID && c.Lines[i].Note == note {
			c.Lines[i].Quantity--
			if c.Lines[i].Quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			}
			return
		}
	}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// OrderItems converts cart lines into order item rows for checkout.
func (c *Cart) OrderItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		item := models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		}
		if line.Note != "" {
			note := line.Note
			item.Note = &note
		}
		items = append(items, item)
	}
	return items
}
