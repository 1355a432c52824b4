package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/models"
)

const orderColumns = `
	id, number, user_id, customer_name, customer_phone, customer_email,
	type, table_number, delivery_address, total_amount, payment_method,
	payment_status, status, barcode, special_instructions, estimated_minutes,
	created_at, updated_at`

func InsertOrder(tx *sql.Tx, o *models.Order) error {
	err := tx.QueryRow(`
		INSERT INTO orders (
			number, user_id, customer_name, customer_phone, customer_email,
			type, table_number, delivery_address, total_amount, payment_method,
			payment_status, status, barcode, special_instructions, estimated_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		o.Number, o.UserID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		o.Type, o.TableNumber, o.DeliveryAddress, o.TotalAmount, o.PaymentMethod,
		o.PaymentStatus, o.Status, o.Barcode, o.SpecialInstructions, o.EstimatedMinutes).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err := tx.QueryRow(`
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price, note)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice, item.Note).
			Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, $3)`, o.ID, o.Status, "checkout")
	return err
}

func scanOrder(row interface{ Scan(...interface{}) error }) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.CustomerName, &o.CustomerPhone,
		&o.CustomerEmail, &o.Type, &o.TableNumber, &o.DeliveryAddress, &o.TotalAmount,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.Barcode,
		&o.SpecialInstructions, &o.EstimatedMinutes, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func GetOrderByNumber(number string) (models.Order, error) {
	row := database.Cafe.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE number = $1`, number)
	o, err := scanOrder(row)
	if err != nil {
		return o, err
	}
	o.Items, err = getOrderItems(o.ID)
	return o, err
}

func GetOrderByBarcode(barcode string) (models.Order, error) {
	row := database.Cafe.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE barcode = $1`, barcode)
	o, err := scanOrder(row)
	if err != nil {
		return o, err
	}
	o.Items, err = getOrderItems(o.ID)
	return o, err
}

func getOrderItems(orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := database.Cafe.Query(`
		SELECT id, order_id, menu_item_id, name, quantity, unit_price, note
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.Name, &item.Quantity, &item.UnitPrice, &item.Note); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func ListOrders(status models.OrderStatus, userID uuid.UUID) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	var args []interface{}

	if status != "" {
		args = append(args, status)
		query += ` AND status = $1`
	}
	if userID != uuid.Nil {
		args = append(args, userID)
		if len(args) == 1 {
			query += ` AND user_id = $1`
		} else {
			query += ` AND user_id = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := database.Cafe.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = getOrderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderStatus applies the transition only while the row still holds
// the expected status. A stale request finds zero rows and reports false,
// so transitions land in the order they were requested.
func UpdateOrderStatus(number string, from, to models.OrderStatus, changedBy string) (bool, error) {
	var applied bool
	err := database.Tx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE orders SET status = $1, updated_at = NOW()
			WHERE number = $2 AND status = $3`, to, number, from)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		_, err = tx.Exec(`
			INSERT INTO order_status_log (order_id, status, changed_by)
			SELECT id, $1, $2 FROM orders WHERE number = $3`, to, changedBy, number)
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

func UpdateOrderPaymentStatus(number string, from, to models.PaymentStatus) (bool, error) {
	result, err := database.Cafe.Exec(`
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE number = $2 AND payment_status = $3`, to, number, from)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func GetOrderStatusHistory(number string) (*sql.Rows, error) {
	return database.Cafe.Query(`
		SELECT status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = (SELECT id FROM orders WHERE number = $1)
		ORDER BY changed_at ASC`, number)
}

type DailyStats struct {
	TotalOrders     int             `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AverageOrder    decimal.Decimal `json:"average_order_value"`
	DeliveredOrders int             `json:"delivered_orders"`
}

func GetDailyOrderStats() (DailyStats, error) {
	var stats DailyStats
	err := database.Cafe.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(AVG(total_amount), 0),
			COUNT(*) FILTER (WHERE status = 'delivered')
		FROM orders
		WHERE DATE(created_at) = CURRENT_DATE`).
		Scan(&stats.TotalOrders, &stats.TotalRevenue, &stats.AverageOrder, &stats.DeliveredOrders)
	return stats, err
}

type PopularItem struct {
	Name         string          `json:"name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

func GetPopularItems(limit int) ([]PopularItem, error) {
	rows, err := database.Cafe.Query(`
		SELECT oi.name, SUM(oi.quantity), SUM(oi.unit_price * oi.quantity)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'delivered'
		GROUP BY oi.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PopularItem
	for rows.Next() {
		var item PopularItem
		if err := rows.Scan(&item.Name, &item.TotalSold, &item.TotalRevenue); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
