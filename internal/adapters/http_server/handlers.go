package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"dune_tours/internal/app"
	"dune_tours/internal/chat"
	"dune_tours/internal/domain"
	"dune_tours/internal/locale"
	"dune_tours/internal/pricing"
	"dune_tours/internal/site"
)

const maxBody = 1 << 20

type MapSettings struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Zoom        int     `json:"zoom"`
	Label       string  `json:"label"`
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
}

type Handlers struct {
	Catalog    *app.CatalogService
	Commands   *app.CommandService
	Chat       *chat.Hub
	Map        MapSettings
	AdminToken string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/activities", h.listActivities)
	s.mux.Get("/v1/activities/{id}", h.getActivity)

	s.mux.Get("/v1/ui/strings", h.uiStrings)
	s.mux.Get("/v1/ui/routes", h.uiRoutes)
	s.mux.Get("/v1/map", h.mapEmbed)

	s.mux.Get("/v1/preferences", h.getPreferences)
	s.mux.Put("/v1/preferences", h.putPreferences)

	if h.Chat != nil {
		s.mux.Route("/v1/chat/sessions", func(r chi.Router) {
			r.Post("/", h.createChat)
			r.Get("/{id}", h.getChat)
			r.Post("/{id}/messages", h.postChatMessage)
			r.Delete("/{id}", h.deleteChat)
		})
	}

	// no token, no admin surface
	if h.AdminToken != "" && h.Commands != nil {
		s.mux.Route("/v1/admin", func(r chi.Router) {
			r.Use(AdminAuth(h.AdminToken))
			r.Put("/activities/{id}", h.putActivity)
			r.Delete("/activities/{id}", h.deleteActivity)
		})
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidLanguage),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidActivity):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, chat.ErrHubFull), errors.Is(err, chat.ErrHubClosed):
		status = http.StatusServiceUnavailable
	}
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		detail = ""
	}
	writeProblem(w, status, http.StatusText(status), detail)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v with a weak ETag and answers 304 on If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, lang domain.Language, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept-Language, Cookie")
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Language", string(lang))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cached body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

// ---- catalog ----

type cardList struct {
	Language domain.Language    `json:"language"`
	Currency domain.Currency    `json:"currency"`
	Dir      string             `json:"dir"`
	Items    []app.ActivityCard `json:"items"`
}

func (h *Handlers) listActivities(w http.ResponseWriter, r *http.Request) {
	q := domain.ActivitiesQuery{}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > app.MaxListLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and "+strconv.Itoa(app.MaxListLimit))
			return
		}
		q.Limit = l
	}
	if c := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))); c != "" {
		q.Category = &c
	}

	p := ShellFrom(r.Context()).Prefs()
	cards, err := h.Catalog.ListCards(r.Context(), q, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, p.Language, cardList{Language: p.Language, Currency: p.Currency, Dir: p.Language.Dir(), Items: cards})
}

func (h *Handlers) getActivity(w http.ResponseWriter, r *http.Request) {
	p := ShellFrom(r.Context()).Prefs()
	card, err := h.Catalog.GetCard(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, p.Language, card)
}

// ---- ui ----

type uiStrings struct {
	Language domain.Language `json:"language"`
	Dir      string          `json:"dir"`
	Strings  locale.Strings  `json:"strings"`
}

func (h *Handlers) uiStrings(w http.ResponseWriter, r *http.Request) {
	l := ShellFrom(r.Context()).Prefs().Language
	writeCached(w, r, l, uiStrings{Language: l, Dir: l.Dir(), Strings: locale.For(l)})
}

func (h *Handlers) uiRoutes(w http.ResponseWriter, r *http.Request) {
	if path := r.URL.Query().Get("path"); path != "" {
		route, ok := site.Match(path)
		status := http.StatusOK
		if !ok {
			status = http.StatusNotFound
		}
		writeJSON(w, status, route)
		return
	}
	writeJSON(w, http.StatusOK, site.Routes)
}

func (h *Handlers) mapEmbed(w http.ResponseWriter, r *http.Request) {
	l := ShellFrom(r.Context()).Prefs().Language
	m := h.Map
	if m.Label == "" {
		m.Label = locale.For(l).MapLabel
	}
	writeCached(w, r, l, m)
}

// ---- preferences ----

type prefsUpdate struct {
	Language *string `json:"language"`
	Currency *string `json:"currency"`
}

func (h *Handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ShellFrom(r.Context()).Prefs())
}

func (h *Handlers) putPreferences(w http.ResponseWriter, r *http.Request) {
	var in prefsUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	sh := ShellFrom(r.Context())
	var changed *app.Prefs
	unsub := sh.Subscribe(func(p app.Prefs) { changed = &p })
	defer unsub()

	// validate both before applying either
	var lang domain.Language
	var cur domain.Currency
	if in.Language != nil {
		l, ok := locale.Parse(*in.Language)
		if !ok {
			writeError(w, domain.ErrInvalidLanguage)
			return
		}
		lang = l
	}
	if in.Currency != nil {
		c, ok := pricing.ParseCurrency(*in.Currency)
		if !ok {
			writeError(w, domain.ErrInvalidCurrency)
			return
		}
		cur = c
	}
	if lang != "" {
		_ = sh.SetLanguage(lang)
	}
	if cur != "" {
		_ = sh.SetCurrency(cur)
	}
	if changed != nil {
		setPrefCookies(w, *changed)
	}
	writeJSON(w, http.StatusOK, sh.Prefs())
}

// ---- chat ----

type chatInput struct {
	Text string `json:"text"`
}

type chatAck struct {
	Accepted   bool            `json:"accepted"`
	Transcript chat.Transcript `json:"transcript"`
}

func (h *Handlers) createChat(w http.ResponseWriter, r *http.Request) {
	s, err := h.Chat.Create(ShellFrom(r.Context()).Prefs().Language)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/chat/sessions/"+s.ID.String())
	writeJSON(w, http.StatusCreated, s.Transcript())
}

func (h *Handlers) getChat(w http.ResponseWriter, r *http.Request) {
	s, err := h.Chat.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Transcript())
}

// postChatMessage answers 202 when a reply was scheduled, 200 when blank
// input was ignored.
func (h *Handlers) postChatMessage(w http.ResponseWriter, r *http.Request) {
	s, err := h.Chat.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var in chatInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ok := s.Submit(in.Text)
	status := http.StatusOK
	if ok {
		status = http.StatusAccepted
	}
	writeJSON(w, status, chatAck{Accepted: ok, Transcript: s.Transcript()})
}

func (h *Handlers) deleteChat(w http.ResponseWriter, r *http.Request) {
	if err := h.Chat.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- admin ----

func (h *Handlers) putActivity(w http.ResponseWriter, r *http.Request) {
	var a domain.Activity
	if !decodeJSON(w, r, &a) {
		return
	}
	a.ID = chi.URLParam(r, "id")
	if err := h.Commands.SaveActivity(r.Context(), a); err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("id", a.ID).Msg("activity saved")
	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Commands.DeleteActivity(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("id", id).Msg("activity deleted")
	w.WriteHeader(http.StatusNoContent)
}
