package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

// Handler serves the wiki pages. Each page issues exactly one store call,
// except the character page which resolves the name first.
type Handler struct {
	store  wiki.Store
	logger *zap.Logger
}

// NewHandler creates a page handler over the given store.
func NewHandler(store wiki.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Index serves the static landing page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index", nil)
}

// ListCharacters serves /char/.
func (h *Handler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.ListCharacters(r.Context())
	if err != nil {
		h.fail(w, r, "list characters", err)
		return
	}
	h.render(w, r, "characters", newCharacterListPage(names))
}

// ShowCharacter serves /char/{name}.
func (h *Handler) ShowCharacter(w http.ResponseWriter, r *http.Request) {
	name := characterName(r)

	ch, err := h.store.FindCharacter(r.Context(), name)
	switch {
	case errors.Is(err, wiki.ErrNotFound):
		http.Error(w, "Character not found", http.StatusNotFound)
		return
	case errors.Is(err, wiki.ErrEmptyName):
		http.Error(w, "Character name required", http.StatusBadRequest)
		return
	case err != nil:
		h.fail(w, r, "find character", err, zap.String("character", name))
		return
	}

	profile, err := h.store.Profile(r.Context(), ch)
	if err != nil {
		h.fail(w, r, "character profile", err, zap.String("character", name))
		return
	}
	h.render(w, r, "character", newCharacterPage(profile))
}

// VictimNationalities serves /top/victim_nationalities.
func (h *Handler) VictimNationalities(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.store.VictimNationalities(r.Context())
	if err != nil {
		h.fail(w, r, "victim nationalities", err)
		return
	}
	h.render(w, r, "nationalities", newNationalityPage(ranked))
}

// characterName returns the decoded {name} parameter. chi routes on RawPath
// when the request carried escapes such as %2F, leaving the parameter encoded.
func characterName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	body, err := renderPage(page, data)
	if err != nil {
		h.fail(w, r, "render "+page, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("Failed to write response",
			zap.String("page", page),
			zap.Error(err),
		)
	}
}

// fail logs err and answers with a bare 500; no diagnostics reach the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("operation", op),
		zap.String("path", r.URL.Path),
		zap.String("requestID", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	h.logger.Error("Request failed", fields...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
