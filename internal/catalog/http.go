package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

type Server struct {
	Store *Store
	Log   *zap.Logger

	WriteMiddleware []func(http.Handler) http.Handler
}

type productView struct {
	Product
	DisplayPrice string `json:"displayPrice"`
}

func viewOf(p Product) productView {
	return productView{Product: p, DisplayPrice: p.DisplayPrice()}
}

func viewsOf(ps []Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, viewOf(p))
	}
	return out
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if !s.Store.Initialized() {
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		if err := s.Store.Ping(ctx); err != nil {
			s.logger().Warn("readyz failed", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/{id}", s.getProduct)
		r.Get("/{id}/related", s.relatedProducts)

		r.Group(func(wr chi.Router) {
			wr.Use(s.WriteMiddleware...)
			wr.Post("/", s.createProduct)
			wr.Patch("/{id}", s.updateProduct)
			wr.Delete("/{id}", s.deleteProduct)
		})
	})

	r.Route("/collections", func(r chi.Router) {
		r.Get("/", s.listCollections)
		r.Get("/{id}", s.getCollection)
		r.Get("/{id}/products", s.collectionProducts)

		r.Group(func(wr chi.Router) {
			wr.Use(s.WriteMiddleware...)
			wr.Post("/", s.createCollection)
			wr.Patch("/{id}", s.updateCollection)
			wr.Delete("/{id}", s.deleteCollection)
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", s.getSettings)

		r.Group(func(wr chi.Router) {
			wr.Use(s.WriteMiddleware...)
			wr.Patch("/", s.updateSettings)
			wr.Put("/hero", s.setHero)
		})
	})

	return r
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := s.Store.Products()

	if c := q.Get("collection"); c != "" {
		products = FilterByCollection(products, c)
	}
	if f := q.Get("featured"); f != "" {
		featured, err := strconv.ParseBool(f)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad featured flag", map[string]any{"featured": f})
			return
		}
		if featured {
			products = FilterFeatured(products)
		}
	}
	if query := q.Get("q"); query != "" {
		products = Search(products, query)
	}

	kit.WriteJSON(w, http.StatusOK, viewsOf(products))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Store.ProductByID(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, viewOf(p))
}

func (s *Server) relatedProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := DefaultRelatedLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			kit.WriteError(w, r, http.StatusBadRequest, "bad limit", map[string]any{"limit": l})
			return
		}
		limit = n
	}

	related, ok := s.Store.RelatedProducts(id, limit)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, viewsOf(related))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Collection = strings.TrimSpace(in.Collection)
	if in.Name == "" || in.Collection == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name/collection required", nil)
		return
	}
	if in.Price.IsNegative() {
		kit.WriteError(w, r, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	p, err := s.Store.CreateProduct(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, viewOf(p))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch ProductPatch
	if err := kit.DecodeJSON(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		kit.WriteError(w, r, http.StatusBadRequest, "price must not be negative", nil)
		return
	}
	if !trimRequired(&patch.Name) || !trimRequired(&patch.Collection) {
		kit.WriteError(w, r, http.StatusBadRequest, "name/collection must not be empty", nil)
		return
	}

	p, ok, err := s.Store.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, viewOf(p))
}

func trimRequired(v **string) bool {
	if *v == nil {
		return true
	}
	t := strings.TrimSpace(**v)
	*v = &t
	return t != ""
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := s.Store.DeleteProduct(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.Collections())
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := s.Store.CollectionByID(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) collectionProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := s.Store.CollectionByID(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, viewsOf(s.Store.ProductsByCollection(c.Name)))
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var in CollectionInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if !s.validCollectionName(w, r, in.Name, "") {
		return
	}

	c, err := s.Store.CreateCollection(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch CollectionPatch
	if err := kit.DecodeJSON(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if !s.validCollectionName(w, r, name, id) {
			return
		}
		patch.Name = &name
	}

	c, ok, err := s.Store.UpdateCollection(r.Context(), id, patch)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

// validCollectionName enforces non-empty, case-insensitively unique names.
// selfID is the collection being renamed, if any.
func (s *Server) validCollectionName(w http.ResponseWriter, r *http.Request, name, selfID string) bool {
	if name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name required", nil)
		return false
	}
	if name == AllCollections {
		kit.WriteError(w, r, http.StatusBadRequest, "name is reserved", map[string]any{"name": name})
		return false
	}
	if c, exists := s.Store.CollectionByName(name); exists && c.ID != selfID {
		kit.WriteError(w, r, http.StatusConflict, "collection exists", map[string]any{"id": c.ID})
		return false
	}
	return true
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := s.Store.DeleteCollection(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.Settings())
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch SettingsPatch
	if err := kit.DecodeJSON(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if patch.HeroProduct != nil && patch.HeroProduct.Price.IsNegative() {
		kit.WriteError(w, r, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	settings, err := s.Store.UpdateSiteSettings(r.Context(), patch)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, settings)
}

func (s *Server) setHero(w http.ResponseWriter, r *http.Request) {
	var hero HeroProduct
	if err := kit.DecodeJSON(w, r, &hero); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if hero.Price.IsNegative() {
		kit.WriteError(w, r, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	settings, err := s.Store.SetHeroProduct(r.Context(), hero)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, settings)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrPersist) {
		s.logger().Error("catalog write-through failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "persist failed", nil)
		return
	}
	s.logger().Error("catalog mutation failed", zap.Error(err))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
