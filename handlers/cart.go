package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/brewandbean/cafe/database/dbhelper"
	"github.com/brewandbean/cafe/middlewares"
)

func GetCart(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := cartStore.Load(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"lines":      c.Lines,
		"total":      c.Total(),
		"item_count": c.ItemCount(),
	})
}

func AddCartItem(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
		Note       string    `json:"note"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	item, err := dbhelper.GetMenuItem(req.MenuItemID)
	if err != nil {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	}
	if !item.IsAvailable {
		http.Error(w, "menu item is not available", http.StatusBadRequest)
		return
	}

	c, err := cartStore.Load(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	c.Add(item, req.Note)
	if err := cartStore.Save(r.Context(), claims.UserID, c); err != nil {
		http.Error(w, "failed to save cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"lines":      c.Lines,
		"total":      c.Total(),
		"item_count": c.ItemCount(),
	})
}

func RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
		Note       string    `json:"note"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	c, err := cartStore.Load(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	c.Remove(req.MenuItemID, req.Note)
	if err := cartStore.Save(r.Context(), claims.UserID, c); err != nil {
		http.Error(w, "failed to save cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"lines":      c.Lines,
		"total":      c.Total(),
		"item_count": c.ItemCount(),
	})
}

func ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := cartStore.Delete(r.Context(), claims.UserID); err != nil {
		http.Error(w, "failed to clear cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Cart cleared",
	})
}

func ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	added, err := dbhelper.ToggleFavorite(claims.UserID, req.MenuItemID)
	if err != nil {
		http.Error(w, "failed to toggle favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"favorite": added,
	})
}

func ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ids, err := dbhelper.ListFavorites(claims.UserID)
	if err != nil {
		http.Error(w, "failed to list favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ids)
}
