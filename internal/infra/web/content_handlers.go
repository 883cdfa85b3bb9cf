package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"realestate-marketplace/internal/domain/model"
)

type blogPublishRequest struct {
	Title      string   `json:"title" validate:"required"`
	Body       string   `json:"body" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"omitempty,url"`
	Tags       []string `json:"tags"`
}

type testimonialRequest struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

func (s *Server) handleBlogPublish(w http.ResponseWriter, r *http.Request) {
	var req blogPublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post fields")
		return
	}

	post, err := s.blogUC.Publish(r.Context(), ResolveUserID(r), &model.BlogPost{
		Title:      req.Title,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleBlogGet(w http.ResponseWriter, r *http.Request) {
	post, err := s.blogUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleBlogList(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, err := s.blogUC.List(r.Context(), offset, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": posts, "offset": offset, "limit": limit})
}

func (s *Server) handleBlogDelete(w http.ResponseWriter, r *http.Request) {
	// Only admins may remove editorial content.
	if resolveRole(r) != model.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if err := s.blogUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTestimonialSubmit(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid testimonial fields")
		return
	}

	t, err := s.testimonialUC.Submit(r.Context(), ResolveUserID(r), &model.Testimonial{
		Name:    req.Name,
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTestimonialList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ts, err := s.testimonialUC.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ts})
}
