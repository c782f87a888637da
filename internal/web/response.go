package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GrandCart/PantryPlus2/internal/domain"
	"github.com/GrandCart/PantryPlus2/internal/service"
	"github.com/GrandCart/PantryPlus2/internal/store"
)

// itemResponse is an item plus its stock status derived at response time.
type itemResponse struct {
	domain.InventoryItem
	StockStatus domain.StockStatus `json:"stock_status"`
}

func (s *Server) itemResponses(items []domain.InventoryItem) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = itemResponse{InventoryItem: item, StockStatus: s.service.Stock(item)}
	}
	return out
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service failure kind to an HTTP status and writes it.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		jsonError(w, http.StatusUnauthorized, "not signed in")
	case errors.Is(err, service.ErrMissingIdentifier):
		jsonError(w, http.StatusBadRequest, "item has no identifier")
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	default:
		s.logger.Error("service error", "error", err)
		jsonError(w, http.StatusBadGateway, err.Error())
	}
}
