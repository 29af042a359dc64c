package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/kmullins/linkgen/internal/domain"
	"github.com/kmullins/linkgen/internal/service"
)

// Handler holds the HTTP handlers for the link generator
type Handler struct {
	links service.LinkService
}

// NewHandler creates a new HTTP handler
func NewHandler(links service.LinkService) *Handler {
	return &Handler{
		links: links,
	}
}

// CreateLink handles POST /api/links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Invalid JSON in create link request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		log.Printf("[ERROR] Empty URL provided in create request")
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	var entry *domain.LinkEntry
	var png []byte
	var err error

	if req.QR {
		entry, png, err = h.links.CreateLinkQR(r.Context(), req.URL)
		// A render failure after the key was issued still created the link.
		// Respond with the link and let the client fetch the QR separately.
		if err != nil && entry != nil {
			log.Printf("[ERROR] QR render failed for key '%s': %v", entry.Key, err)
			err = nil
			png = nil
		}
	} else {
		entry, err = h.links.CreateLink(r.Context(), req.URL)
	}
	if err != nil {
		log.Printf("[ERROR] Failed to create link for '%s': %v", req.URL, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	linksCreatedTotal.Inc()
	if png != nil {
		qrRenderedTotal.Inc()
	}

	response := domain.CreateLinkResponse{
		Key:       entry.Key,
		ShortURL:  h.links.ShortURL(entry.Key),
		TargetURL: entry.TargetURL,
		CreatedAt: entry.CreatedAt,
		QRPNG:     png,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// GetLink handles GET /api/links/{key}
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/links/")
	if key == "" {
		http.Error(w, "Key is required", http.StatusBadRequest)
		return
	}

	entry, err := h.links.GetLinkInfo(r.Context(), key)
	if err != nil {
		log.Printf("[ERROR] Failed to get link info for key '%s': %v", key, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// DeleteLink handles DELETE /api/links/{key}
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/links/")
	if key == "" {
		http.Error(w, "Key is required", http.StatusBadRequest)
		return
	}

	err := h.links.DeleteLink(r.Context(), key)
	if err != nil {
		log.Printf("[ERROR] Failed to delete link with key '%s': %v", key, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLinks handles GET /api/links
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.links.GetAllLinks(r.Context())
	if err != nil {
		log.Printf("Error getting all links: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// LinkQR handles GET /api/links/{key}/qr - serves the QR image as PNG
func (h *Handler) LinkQR(w http.ResponseWriter, r *http.Request, key string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if key == "" {
		http.Error(w, "Key is required", http.StatusBadRequest)
		return
	}

	png, err := h.links.RenderKeyQR(r.Context(), key)
	if err != nil {
		log.Printf("[ERROR] Failed to render QR for key '%s': %v", key, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	qrRenderedTotal.Inc()

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("Error writing QR image: %v", err)
	}
}

// Redirect handles GET /{key} - redirects to the target URL
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || key == "api/links" || strings.HasPrefix(key, "api/") {
		http.NotFound(w, r)
		return
	}

	targetURL, err := h.links.ResolveLink(r.Context(), key)
	if err != nil {
		log.Printf("[ERROR] Failed to resolve key '%s': %v", key, err)
		http.NotFound(w, r)
		return
	}

	redirectsTotal.Inc()
	http.Redirect(w, r, targetURL, http.StatusFound)
}

// LinksHandler handles both POST /api/links and GET /api/links
func (h *Handler) LinksHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateLink(w, r)
	case http.MethodGet:
		h.ListLinks(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// LinksDetailHandler routes /api/links/{key} and /api/links/{key}/qr
func (h *Handler) LinksDetailHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/links/")
	if key, ok := strings.CutSuffix(rest, "/qr"); ok {
		h.LinkQR(w, r, key)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetLink(w, r)
	case http.MethodDelete:
		h.DeleteLink(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
