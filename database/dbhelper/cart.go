package dbhelper

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/brewandbean/cafe/cart"
	"github.com/brewandbean/cafe/database"
)

// CartStore keeps one serialized cart row per customer. Saves replace the
// whole row so the stored copy always matches the last committed mutation.
type CartStore struct{}

func NewCartStore() *CartStore {
	return &CartStore{}
}

func (s *CartStore) Load(ctx context.Context, ownerID uuid.UUID) (cart.Cart, error) {
	var raw []byte
	err := database.Cafe.QueryRowContext(ctx,
		`SELECT lines FROM carts WHERE user_id = $1`, ownerID).Scan(&raw)
	if err == sql.ErrNoRows {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, err
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c.Lines); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, ownerID uuid.UUID, c cart.Cart) error {
	raw, err := json.Marshal(c.Lines)
	if err != nil {
		return err
	}

	_, err = database.Cafe.ExecContext(ctx, `
		INSERT INTO carts (user_id, lines, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET lines = $2, updated_at = NOW()`,
		ownerID, raw)
	return err
}

func (s *CartStore) Delete(ctx context.Context, ownerID uuid.UUID) error {
	_, err := database.Cafe.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, ownerID)
	return err
}

// Favorites is the customer's saved menu item set, toggled on and off from
// the storefront.
func ToggleFavorite(userID, menuItemID uuid.UUID) (bool, error) {
	result, err := database.Cafe.Exec(`
		DELETE FROM favorites WHERE user_id = $1 AND menu_item_id = $2`, userID, menuItemID)
	if err != nil {
		return false, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = database.Cafe.Exec(`
		INSERT INTO favorites (user_id, menu_item_id) VALUES ($1, $2)`, userID, menuItemID)
	return true, err
}

func ListFavorites(userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := database.Cafe.Query(`
		SELECT menu_item_id FROM favorites WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
