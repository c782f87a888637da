package web

import (
	"io"
	"net/http"
)

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUserID(w); !ok {
		return
	}

	reader, mimeType, err := s.blobs.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "image not found")
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Error("failed to close blob reader", "error", err)
		}
	}()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("failed to stream image", "error", err)
	}
}
