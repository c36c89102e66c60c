package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/cv-builder/internal/types"
)

// maxAssistBytes bounds an /ai/* request body.
const maxAssistBytes = 64 << 10

// assistFailure is the body of every failed /ai/* response.
type assistFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// decodeAssist reads an /ai/* request body into T.
func decodeAssist[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	var req T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAssistBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, err
		case errors.Is(err, io.EOF):
			return nil, &RequestError{Message: "No data provided"}
		default:
			return nil, &RequestError{Message: "Invalid JSON body", Cause: err}
		}
	}
	return &req, nil
}

// assistError writes the {success:false,error} envelope.
func (s *Server) assistError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	event := s.logger.Debug()
	if status >= http.StatusInternalServerError {
		event = s.logger.Error()
	}
	event.Err(err).Str("path", r.URL.Path).Msg("assist request failed")
	s.jsonResponse(w, status, assistFailure{Success: false, Error: publicMessage(err)})
}

// assistReady reports whether the writing assistant is configured, answering
// 503 when it is not.
func (s *Server) assistReady(w http.ResponseWriter, r *http.Request) bool {
	if s.writer == nil {
		s.assistError(w, r, &UnavailableError{Feature: "writing assistant"})
		return false
	}
	return true
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w, r) {
		return
	}
	req, err := decodeAssist[types.GenerateSummaryRequest](w, r)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	summary, err := s.writer.GenerateSummary(r.Context(), req)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.GenerateSummaryResponse{Success: true, Summary: summary})
}

func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w, r) {
		return
	}
	req, err := decodeAssist[types.SuggestSkillsRequest](w, r)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	skills, err := s.writer.SuggestSkills(r.Context(), req)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SuggestSkillsResponse{Success: true, Skills: skills})
}

func (s *Server) handleImproveBullet(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w, r) {
		return
	}
	req, err := decodeAssist[types.ImproveBulletRequest](w, r)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	improved, err := s.writer.ImproveBullet(r.Context(), req)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ImproveBulletResponse{Success: true, Improved: improved})
}

func (s *Server) handleCheckGrammar(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w, r) {
		return
	}
	req, err := decodeAssist[types.CheckGrammarRequest](w, r)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	changed, corrected, err := s.writer.CheckGrammar(r.Context(), req)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CheckGrammarResponse{Success: true, HasChanges: changed, Corrected: corrected})
}

func (s *Server) handleRewriteTone(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w, r) {
		return
	}
	req, err := decodeAssist[types.RewriteToneRequest](w, r)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	rewritten, err := s.writer.RewriteTone(r.Context(), req)
	if err != nil {
		s.assistError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.RewriteToneResponse{Success: true, Rewritten: rewritten})
}
