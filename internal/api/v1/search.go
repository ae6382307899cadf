package v1

import (
	"net/http"
	"strings"

	"github.com/DelsinneJordan/BigFlix/internal/availability"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query is required")
		return
	}
	kind := catalog.KindMovie
	if k := queryString(r, "kind"); k != nil {
		parsed, err := catalog.ParseKind(*k)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_KIND", err.Error())
			return
		}
		kind = parsed
	}
	page := queryInt(r, "page", 1)
	if page < 1 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be at least 1")
		return
	}

	servers, err := s.deps.Bindings.ForUser(r.Context(), actor.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result, err := s.deps.Catalog.Search(r.Context(), query, kind, page)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:        query,
		Kind:         string(kind),
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
		Results:      s.deps.Availability.Enrich(r.Context(), result.Items, servers),
	})
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	kind, err := catalog.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", err.Error())
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	servers, err := s.deps.Bindings.ForUser(r.Context(), actor.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	item, err := s.deps.Catalog.Get(r.Context(), kind, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	enriched := s.deps.Availability.Enrich(r.Context(), []catalog.Item{*item}, servers)
	var out availability.Enriched
	if len(enriched) == 1 {
		out = enriched[0]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listServers(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	servers, err := s.deps.Bindings.ForUser(r.Context(), actor.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]serverResponse, 0, len(servers.Bindings))
	for _, b := range servers.Bindings {
		out = append(out, serverResponse{
			ID:      b.ID,
			Name:    b.Name,
			Primary: servers.Primary != nil && servers.Primary.ID == b.ID,
			Radarr:  b.Radarr.Configured(),
			Sonarr:  b.Sonarr.Configured(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
