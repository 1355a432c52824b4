package dbhelper

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/models"
)

func CreateUser(tx *sql.Tx, name, phone, email, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`INSERT INTO users (name, phone, email, password) VALUES ($1, $2, NULLIF($3, ''), $4) RETURNING id`,
		name, phone, email, hashedPassword).Scan(&id)
	return id, err
}

func IsUserExists(phone string) (bool, error) {
	var count int
	err := database.Cafe.QueryRow(`SELECT COUNT(*) FROM users WHERE phone = $1 AND archived_at IS NULL`, phone).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sql.Tx, userID uuid.UUID, role models.Role) error {
	_, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	return err
}

func GetUserByPassword(phone, password string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var hashedPassword string
	var name string

	err := database.Cafe.QueryRow(`
		SELECT id, name, password FROM users
		WHERE phone = $1 AND archived_at IS NULL`, phone).
		Scan(&id, &name, &hashedPassword)
	if err != nil {
		return uuid.Nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return uuid.Nil, "", fmt.Errorf("incorrect password")
	}

	return id, name, nil
}

func GetUserRoles(userID uuid.UUID) ([]string, error) {
	rows, err := database.Cafe.Query(`
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func GetUserByPhone(phone string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := database.Cafe.QueryRow(`
		SELECT id FROM users
		WHERE phone = $1 AND archived_at IS NULL`, phone).
		Scan(&userID)
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func HasRole(userID uuid.UUID, role models.Role) (bool, error) {
	var exists bool
	err := database.Cafe.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM user_roles
			WHERE user_id = $1 AND role = $2 AND archived_at IS NULL
		)`, userID, role).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func GrantRole(userID uuid.UUID, role models.Role) error {
	_, err := database.Cafe.Exec(`
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)`, userID, role)
	return err
}

func ListUsersByRole(role models.Role) (*sql.Rows, error) {
	return database.Cafe.Query(`
		SELECT u.id, u.name, u.phone
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE ur.role = $1 AND u.archived_at IS NULL AND ur.archived_at IS NULL
		ORDER BY u.created_at ASC`, role)
}
