package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/GrandCart/PantryPlus2/internal/domain"
	"github.com/GrandCart/PantryPlus2/internal/query"
	"github.com/GrandCart/PantryPlus2/internal/service"
)

const maxImageBytes = 10 << 20

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUserID(w); !ok {
		return
	}

	f := query.Filter{
		Search: r.URL.Query().Get("q"),
		Sort:   query.ParseSortOrder(r.URL.Query().Get("sort")),
	}
	if locParam := r.URL.Query().Get("location"); locParam != "" {
		loc := domain.StorageLocation(locParam)
		if !loc.Valid() {
			jsonError(w, http.StatusBadRequest, "unknown location")
			return
		}
		f.Location = &loc
	}

	jsonResponse(w, http.StatusOK, s.itemResponses(s.service.View(f)))
}

func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUserID(w); !ok {
		return
	}
	jsonResponse(w, http.StatusOK, s.itemResponses(s.service.ExpiringSoon()))
}

func (s *Server) handleExpired(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUserID(w); !ok {
		return
	}
	jsonResponse(w, http.StatusOK, s.itemResponses(s.service.Expired()))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(w)
	if !ok {
		return
	}

	item, image, imageType, err := parseItemRequest(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(item.Name) == "" {
		jsonError(w, http.StatusBadRequest, "item name required")
		return
	}
	if item.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}
	if !item.Location.Valid() {
		jsonError(w, http.StatusBadRequest, "unknown location")
		return
	}

	added, err := s.service.Add(r.Context(), userID, item, image, imageType)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, itemResponse{InventoryItem: *added, StockStatus: s.service.Stock(*added)})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(w)
	if !ok {
		return
	}

	item, image, imageType, err := parseItemRequest(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = r.PathValue("id")
	if item.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}
	if !item.Location.Valid() {
		jsonError(w, http.StatusBadRequest, "unknown location")
		return
	}

	updated, err := s.service.Update(r.Context(), userID, item, image, imageType)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, itemResponse{InventoryItem: *updated, StockStatus: s.service.Stock(*updated)})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(w)
	if !ok {
		return
	}

	item, found := s.service.Item(r.PathValue("id"))
	if !found {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := s.service.Delete(r.Context(), userID, item); err != nil {
		if errors.Is(err, service.ErrImageDelete) {
			// The item is gone; the orphaned image is a warning, not a
			// failure.
			jsonResponse(w, http.StatusOK, map[string]string{"warning": "image could not be deleted"})
			return
		}
		s.serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseItemRequest decodes an item from either a JSON body or a multipart
// form with an "item" JSON field and an optional "image" file.
func parseItemRequest(r *http.Request) (domain.InventoryItem, []byte, string, error) {
	var item domain.InventoryItem

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return item, nil, "", errors.New("invalid request body")
		}
		return item, nil, "", nil
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return item, nil, "", errors.New("invalid multipart form")
	}
	if err := json.Unmarshal([]byte(r.FormValue("item")), &item); err != nil {
		return item, nil, "", errors.New("invalid item field")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return item, nil, "", nil
		}
		return item, nil, "", errors.New("invalid image upload")
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return item, nil, "", errors.New("failed to read image")
	}

	return item, image, header.Header.Get("Content-Type"), nil
}
