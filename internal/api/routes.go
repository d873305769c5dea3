package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// List posts, optionally sorted.
	// (GET /api/posts)
	ListPosts(w http.ResponseWriter, r *http.Request, params ListPostsParams)
	// (POST /api/posts)
	CreatePost(w http.ResponseWriter, r *http.Request)
	// Case-insensitive substring search over title and content.
	// (GET /api/posts/search)
	SearchPosts(w http.ResponseWriter, r *http.Request, params SearchPostsParams)
	// (GET /api/posts/{id})
	GetPost(w http.ResponseWriter, r *http.Request, id int)
	// (PUT /api/posts/{id})
	UpdatePost(w http.ResponseWriter, r *http.Request, id int)
	// (DELETE /api/posts/{id})
	DeletePost(w http.ResponseWriter, r *http.Request, id int)
}

// ListPostsParams defines parameters for ListPosts.
type ListPostsParams struct {
	Sort      *string `form:"sort,omitempty" json:"sort,omitempty"`
	Direction *string `form:"direction,omitempty" json:"direction,omitempty"`
}

// SearchPostsParams defines parameters for SearchPosts.
type SearchPostsParams struct {
	Title   *string `form:"title,omitempty" json:"title,omitempty"`
	Content *string `form:"content,omitempty" json:"content,omitempty"`
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	handler := http.Handler(h)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// GetHealth operation middleware
func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetHealth)
}

// ListPosts operation middleware
func (siw *ServerInterfaceWrapper) ListPosts(w http.ResponseWriter, r *http.Request) {
	var params ListPostsParams
	query := firstValues(r.URL.Query())

	if err := runtime.BindQueryParameter("form", true, false, "sort", query, &params.Sort); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "sort", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "direction", query, &params.Direction); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "direction", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListPosts(w, r, params)
	})
}

// CreatePost operation middleware
func (siw *ServerInterfaceWrapper) CreatePost(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreatePost)
}

// SearchPosts operation middleware
func (siw *ServerInterfaceWrapper) SearchPosts(w http.ResponseWriter, r *http.Request) {
	var params SearchPostsParams
	query := firstValues(r.URL.Query())

	if err := runtime.BindQueryParameter("form", true, false, "title", query, &params.Title); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "title", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "content", query, &params.Content); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "content", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchPosts(w, r, params)
	})
}

// firstValues keeps the first value of a repeated query parameter.
func firstValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[:1]
		}
	}
	return out
}

func (siw *ServerInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	var id int
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, raw, &id)
	if err == nil && !isDigits(raw) {
		err = fmt.Errorf("id %q is not an unsigned integer", raw)
	}
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return 0, false
	}
	return id, true
}

// GetPost operation middleware
func (siw *ServerInterfaceWrapper) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetPost(w, r, id)
	})
}

// UpdatePost operation middleware
func (siw *ServerInterfaceWrapper) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.UpdatePost(w, r, id)
	})
}

// DeletePost operation middleware
func (siw *ServerInterfaceWrapper) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeletePost(w, r, id)
	})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the post API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.GetHealth)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/posts", wrapper.ListPosts)
		r.Post(options.BaseURL+"/api/posts", wrapper.CreatePost)
		r.Get(options.BaseURL+"/api/posts/search", wrapper.SearchPosts)
		r.Get(options.BaseURL+"/api/posts/{id}", wrapper.GetPost)
		r.Put(options.BaseURL+"/api/posts/{id}", wrapper.UpdatePost)
		r.Delete(options.BaseURL+"/api/posts/{id}", wrapper.DeletePost)
	})

	return r
}
