package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Category    string          `db:"category" json:"category"`
	Vegetarian  bool            `db:"vegetarian" json:"vegetarian"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
