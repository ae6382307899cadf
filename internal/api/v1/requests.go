package v1

import (
	"encoding/json"
	"net/http"

	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/request"
)

func (s *Server) createRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	kind, err := catalog.ParseKind(body.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", err.Error())
		return
	}
	if body.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "itemId must be positive")
		return
	}

	res, err := s.deps.Requests.Create(r.Context(), actor, request.CreateInput{
		TMDBID:   body.ItemID,
		Kind:     kind,
		ServerID: body.ServerID,
		Seasons:  body.Seasons,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	code := http.StatusOK
	if res.Request.Status == request.StatusPending {
		code = http.StatusCreated
	}
	writeJSON(w, code, res)
}

func (s *Server) listRequests(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var f request.Filter
	if st := queryString(r, "status"); st != nil {
		status, err := request.ParseStatus(*st)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
			return
		}
		f.Status = &status
	}
	if r.URL.Query().Get("mine") == "true" {
		f.UserID = &actor.UserID
	}
	f.ServerID = queryString(r, "server")

	list, err := s.deps.Requests.List(r.Context(), actor, f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*request.Request{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	req, err := s.deps.Requests.Get(r.Context(), actor, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) approveRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	res, err := s.deps.Requests.Approve(r.Context(), actor, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) rejectRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var body rejectRequestBody
	if err := decodeOptional(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	req, err := s.deps.Requests.Reject(r.Context(), actor, id, body.Notes)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) deleteRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if err := s.deps.Requests.Delete(r.Context(), actor, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
