package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/models"
)

func ListMenuItems(onlyAvailable bool) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, vegetarian, is_available, created_at
		FROM menu_items`
	if onlyAvailable {
		query += ` WHERE is_available = true`
	}
	query += ` ORDER BY category, name`

	rows, err := database.Cafe.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.Vegetarian, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func GetMenuItem(id uuid.UUID) (models.MenuItem, error) {
	var item models.MenuItem
	err := database.Cafe.QueryRow(`
		SELECT id, name, description, price, category, vegetarian, is_available, created_at
		FROM menu_items WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.Vegetarian, &item.IsAvailable, &item.CreatedAt)
	return item, err
}

func CreateMenuItem(name, description string, price decimal.Decimal, category string, vegetarian bool) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.Cafe.QueryRow(`
		INSERT INTO menu_items (name, description, price, category, vegetarian)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, name, description, price, category, vegetarian).Scan(&id)
	return id, err
}

func SetMenuItemAvailability(id uuid.UUID, available bool) error {
	result, err := database.Cafe.Exec(`UPDATE menu_items SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
