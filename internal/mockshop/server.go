package mockshop

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tqc04/basket/internal/shopapi"
)

// Handler wires the store into the gateway's HTTP surface.
type Handler struct {
	store *Store
}

// NewHandler builds a handler over the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Router returns the full gateway route tree.
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cart", h.getCart)
		r.Post("/cart/add", h.addToCart)
		r.Post("/cart/merge", h.mergeCarts)
		r.Route("/cart/{userID}", func(r chi.Router) {
			r.Put("/update", h.updateQuantity)
			r.Delete("/remove/{productID}", h.removeFromCart)
			r.Delete("/clear", h.clearCart)
		})

		r.Post("/vouchers/validate", h.validateVoucher)

		r.Route("/favorites/user/{userID}", func(r chi.Router) {
			r.Get("/", h.listFavorites)
			r.Post("/add", h.addFavorite)
			r.Delete("/remove/{productID}", h.removeFavorite)
		})

		r.Get("/products", h.listProducts)
		r.Get("/products/autocomplete", h.autocomplete)
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the gateway error body shape the client classifies on.
func writeError(w http.ResponseWriter, err error) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		writeJSON(w, storeErr.Status, shopapi.ErrorBody{
			HasError:     true,
			ErrorMessage: storeErr.Message,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, shopapi.ErrorBody{
		HasError:     true,
		ErrorMessage: err.Error(),
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, errf(http.StatusBadRequest, "%s", message))
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeBadRequest(w, "missing userId")
		return "", false
	}
	return userID, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.store.Cart(userID))
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		VariantID int64  `json:"variantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeBadRequest(w, "missing productId")
		return
	}
	cart, err := h.store.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if err := h.store.UpdateQuantity(userID, req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	productID := chi.URLParam(r, "productID")
	writeJSON(w, http.StatusOK, h.store.RemoveFromCart(userID, productID))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) mergeCarts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req struct {
		GuestID string `json:"guestId"`
	}
	// An empty body merges nothing; the user's cart comes back as-is.
	_ = json.NewDecoder(r.Body).Decode(&req)
	writeJSON(w, http.StatusOK, h.store.MergeCarts(userID, req.GuestID))
}

func (h *Handler) validateVoucher(w http.ResponseWriter, r *http.Request) {
	var req shopapi.VoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if req.VoucherCode == "" {
		writeBadRequest(w, "missing voucherCode")
		return
	}
	writeJSON(w, http.StatusOK, h.store.ValidateVoucher(req))
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Favorites(chi.URLParam(r, "userID")))
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeBadRequest(w, "missing productId")
		return
	}
	if err := h.store.AddFavorite(userID, req.ProductID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveFavorite(chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	writeJSON(w, http.StatusOK, h.store.ListProducts(q.Get("search"), page, size))
}

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	writeJSON(w, http.StatusOK, h.store.Autocomplete(q.Get("q"), limit))
}
