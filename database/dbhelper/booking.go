package dbhelper

import (
	"github.com/google/uuid"

	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/models"
)

const bookingColumns = `
	id, number, user_id, customer_name, customer_phone, customer_email,
	type, date, time, party_size, duration, occasion, special_requests,
	status, payment_status, created_at, updated_at`

func InsertBooking(b *models.Booking) error {
	return database.Cafe.QueryRow(`
		INSERT INTO bookings (
			number, user_id, customer_name, customer_phone, customer_email,
			type, date, time, party_size, duration, occasion, special_requests,
			status, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`,
		b.Number, b.UserID, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.Type, b.Date, b.Time, b.PartySize, b.Duration, b.Occasion,
		b.SpecialRequests, b.Status, b.PaymentStatus).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func scanBooking(row interface{ Scan(...interface{}) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.Number, &b.UserID, &b.CustomerName, &b.CustomerPhone,
		&b.CustomerEmail, &b.Type, &b.Date, &b.Time, &b.PartySize, &b.Duration,
		&b.Occasion, &b.SpecialRequests, &b.Status, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func GetBookingByNumber(number string) (models.Booking, error) {
	row := database.Cafe.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE number = $1`, number)
	return scanBooking(row)
}

func ListBookings(status models.BookingStatus, userID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
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
	query += ` ORDER BY date, time`

	rows, err := database.Cafe.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus is a compare-and-set like the order variant: the row
// must still hold the expected status for the transition to land.
func UpdateBookingStatus(number string, from, to models.BookingStatus) (bool, error) {
	result, err := database.Cafe.Exec(`
		UPDATE bookings SET status = $1, updated_at = NOW()
		WHERE number = $2 AND status = $3`, to, number, from)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func UpdateBookingPaymentStatus(number string, from, to models.PaymentStatus) (bool, error) {
	result, err := database.Cafe.Exec(`
		UPDATE bookings SET payment_status = $1, updated_at = NOW()
		WHERE number = $2 AND payment_status = $3`, to, number, from)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}
