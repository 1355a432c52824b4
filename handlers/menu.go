package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/brewandbean/cafe/database/dbhelper"
)

func ListMenu(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("include_unavailable") == "true"

	items, err := dbhelper.ListMenuItems(!all)
	if err != nil {
		http.Error(w, "failed to query menu", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		Category    string `json:"category"`
		Vegetarian  bool   `json:"vegetarian"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Category == "" {
		http.Error(w, "name and category are required", http.StatusBadRequest)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		http.Error(w, "price must be a non-negative amount", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateMenuItem(req.Name, req.Description, price, req.Category, req.Vegetarian)
	if err != nil {
		http.Error(w, "failed to create menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Menu item created successfully",
		"item_id": id.String(),
	})
}

func SetMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid menu item id", http.StatusBadRequest)
		return
	}

	type request struct {
		Available bool `json:"available"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = dbhelper.SetMenuItemAvailability(itemID, req.Available)
	if err == sql.ErrNoRows {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to update menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Availability updated",
	})
}
