package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/domain/ports/repository"
)

type propertyRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	City        string   `json:"city" validate:"required"`
	Locality    string   `json:"locality"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0"`
	AreaSqft    int      `json:"areaSqft" validate:"gte=0"`
	ImageURLs   []string `json:"imageUrls" validate:"dive,url"`
	Premium     bool     `json:"premium"`
	Status      string   `json:"status" validate:"omitempty,oneof=active sold hidden"`
}

func (req *propertyRequest) toModel() *model.Property {
	return &model.Property{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Price:       req.Price,
		City:        req.City,
		Locality:    req.Locality,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqft:    req.AreaSqft,
		ImageURLs:   req.ImageURLs,
		Premium:     req.Premium,
		Status:      req.Status,
	}
}

func (s *Server) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid listing fields")
		return
	}

	prop, err := s.propertyUC.Create(r.Context(), ResolveUserID(r), req.toModel())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, prop)
}

func (s *Server) handlePropertyGet(w http.ResponseWriter, r *http.Request) {
	prop, err := s.propertyUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prop)
}

func (s *Server) handlePropertyList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	props, err := s.propertyUC.List(r.Context(), repository.PropertyFilter{
		City:   q.Get("city"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   props,
		"offset": offset,
		"limit":  limit,
	})
}

func (s *Server) handlePropertyUpdate(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid listing fields")
		return
	}

	prop := req.toModel()
	prop.ID = chi.URLParam(r, "id")
	if err := s.propertyUC.Update(r.Context(), ResolveUserID(r), prop); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prop)
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.propertyUC.Delete(r.Context(), ResolveUserID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
