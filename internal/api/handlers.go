package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"blogapi/internal/engine"
	"blogapi/internal/model"
)

// PostHandler implements ServerInterface on top of a PostStore.
type PostHandler struct {
	store    engine.PostStore
	validate *validator.Validate
}

var _ ServerInterface = (*PostHandler)(nil)

func NewPostHandler(store engine.PostStore) *PostHandler {
	if store == nil {
		panic("api.NewPostHandler: store is nil")
	}
	return &PostHandler{store: store, validate: newValidator()}
}

func (h *PostHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListPosts returns every post. Without sort the stored order is kept and
// direction is ignored.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request, params ListPostsParams) {
	var opts engine.ListOptions

	if sort := deref(params.Sort); sort != "" {
		field, err := model.ParseSortField(sort)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		dir, err := model.ParseSortDirection(deref(params.Direction))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts = engine.ListOptions{Sort: field, Direction: dir}
	}

	writeJSON(w, http.StatusOK, h.store.List(opts))
}

func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request, params SearchPostsParams) {
	posts := h.store.Search(engine.SearchQuery{
		Title:   deref(params.Title),
		Content: deref(params.Content),
	})
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request, id int) {
	post, err := h.store.Get(id)
	if err != nil {
		h.storeError(w, r, id, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := decodeObject(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if missing := failedFields(h.validate.Struct(req))["required"]; len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Missing fields: "+strings.Join(missing, ", "))
		return
	}

	post := h.store.Create(req.Title, req.Content)
	zerolog.Ctx(r.Context()).Debug().Int("post_id", post.ID).Msg("post created")
	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost changes only the fields present in the body. An absent id is
// reported before anything in the body.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request, id int) {
	if _, err := h.store.Get(id); err != nil {
		h.storeError(w, r, id, err)
		return
	}

	var req UpdatePostRequest
	if err := decodeObject(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if empty := failedFields(h.validate.Struct(req))["min"]; len(empty) > 0 {
		writeError(w, http.StatusBadRequest, "Fields must not be empty: "+strings.Join(empty, ", "))
		return
	}

	post, err := h.store.Update(id, model.PostPatch{Title: req.Title, Content: req.Content})
	if err != nil {
		h.storeError(w, r, id, err)
		return
	}
	zerolog.Ctx(r.Context()).Debug().Int("post_id", id).Msg("post updated")
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.store.Delete(id); err != nil {
		h.storeError(w, r, id, err)
		return
	}
	zerolog.Ctx(r.Context()).Debug().Int("post_id", id).Msg("post deleted")
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Post with id %d has been deleted successfully.", id),
	})
}

func (h *PostHandler) storeError(w http.ResponseWriter, r *http.Request, id int, err error) {
	if errors.Is(err, engine.ErrPostNotFound) {
		writeNotFound(w, fmt.Sprint(id))
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Int("post_id", id).Msg("store operation failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

// paramError is the ChiServerOptions error hook. Ids that are not integers
// cannot name a post, so they are reported as missing.
func paramError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *InvalidParamFormatError
	if errors.As(err, &perr) && perr.ParamName == "id" {
		writeNotFound(w, chi.URLParam(r, "id"))
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeNotFound(w http.ResponseWriter, id string) {
	writeJSON(w, http.StatusNotFound, MessageResponse{
		Message: fmt.Sprintf("Post with id %s was not found.", id),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
