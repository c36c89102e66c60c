package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/photo"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// maxDocumentBytes bounds a JSON document, which may carry a base64 photo.
	maxDocumentBytes = 12 << 20
	// maxFormMemory bounds the in-memory part of a multipart form.
	maxFormMemory = photo.MaxSize + 1<<20
)

// SubmitResponse is the reply to a successful form or preview submission.
type SubmitResponse struct {
	Success  bool            `json:"success"`
	Location string          `json:"location"`
	Document *types.Document `json:"document,omitempty"`
	Notices  []string        `json:"notices,omitempty"`
	// Missing lists required entry fields left empty; such entries are
	// dropped from Document when they lack their identifying fields.
	Missing  []string        `json:"missing,omitempty"`
}

// decodeDocument reads a JSON Document from the request body.
func decodeDocument(w http.ResponseWriter, r *http.Request) (*types.Document, error) {
	body := http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	var doc types.Document
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &RequestError{Message: "No data provided"}
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &RequestError{Message: "Invalid JSON body", Cause: err}
	}
	doc.Normalize()
	return &doc, nil
}

// sessionID returns the caller's preview session, issuing a new one when the
// cookie is missing or malformed. The cookie is refreshed on every call.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	var id string
	if ck, err := r.Cookie(SessionCookie); err == nil && preview.ValidSessionID(ck.Value) {
		id = ck.Value
	} else {
		id = preview.NewSessionID()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.previewTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) failWith(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	} else {
		s.logger.Debug().Err(err).Msg("request rejected")
	}
	s.errorResponse(w, status, publicMessage(err))
}

// handleSubmitPreview stores a JSON Document for the caller's session.
func (s *Server) handleSubmitPreview(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		s.failWith(w, err)
		return
	}

	id := s.sessionID(w, r)
	if err := s.store.Put(r.Context(), id, doc); err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SubmitResponse{Success: true, Location: "/preview"})
}

// handleGetPreview returns the stored Document, as JSON or, with
// ?format=html, as the print rendering.
func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	ck, err := r.Cookie(SessionCookie)
	if err != nil || !preview.ValidSessionID(ck.Value) {
		s.failWith(w, preview.ErrNotFound)
		return
	}

	doc, err := s.store.Get(r.Context(), ck.Value)
	if err != nil {
		s.failWith(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := rendering.RenderHTML(doc)
		if err != nil {
			s.failWith(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, html)
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

// handleSubmitForm builds a Document from a posted HTML form (urlencoded or
// multipart with an optional "photo" file) and stores it like POST /preview.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = &RequestError{Message: "Invalid form data", Cause: err}
		}
		s.failWith(w, err)
		return
	}

	state, notices := form.FromValues(r.PostForm, s.formOptions)

	photoURL := ""
	if r.MultipartForm != nil {
		if photoURL, err = s.acceptPhoto(r); err != nil {
			s.failWith(w, err)
			return
		}
	}

	doc := state.Document(photoURL)
	id := s.sessionID(w, r)
	if err := s.store.Put(r.Context(), id, doc); err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SubmitResponse{
		Success:  true,
		Location: "/preview",
		Document: doc,
		Notices:  noticeTexts(notices),
		Missing:  state.RequiredMissing(),
	})
}

// acceptPhoto runs the uploaded "photo" part, if any, through photo intake.
func (s *Server) acceptPhoto(r *http.Request) (string, error) {
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", &RequestError{Message: "Invalid photo upload", Cause: err}
	}
	defer func() { _ = file.Close() }()

	var intake photo.Intake
	p, err := intake.Accept(r.Context(), photo.File{
		Name:    header.Filename,
		Type:    header.Header.Get("Content-Type"),
		Size:    header.Size,
		Content: file,
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug().Str("filename", p.Filename).Str("size", p.SizeLabel()).Msg("photo accepted")
	return p.DataURI, nil
}

// noticeTexts converts form notices to their user-facing text.
func noticeTexts(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		var n interface{ Notice() string }
		if errors.As(err, &n) {
			out = append(out, n.Notice())
			continue
		}
		out = append(out, err.Error())
	}
	return out
}

// handleValidate checks a Document against the submission rules and the schema.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		s.jsonResponse(w, HTTPStatus(err), map[string]any{"valid": false, "error": publicMessage(err)})
		return
	}

	err = schemas.ValidateDocument(doc)
	var verr *schemas.ValidationError
	switch {
	case err == nil:
		s.jsonResponse(w, http.StatusOK, map[string]any{"valid": true, "message": "CV data is valid"})
	case errors.As(err, &verr):
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{"valid": false, "errors": verr.Messages()})
	default:
		s.logger.Error().Err(err).Msg("validation failed to run")
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{"valid": false, "error": publicMessage(err)})
	}
}

// handleSchema returns the Document JSON Schema.
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(schemas.CVSchema())
}

// handleGeneratePDF renders a Document to PDF and returns it as a download.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.failWith(w, &UnavailableError{Feature: "PDF export"})
		return
	}

	doc, err := decodeDocument(w, r)
	if err != nil {
		s.failWith(w, err)
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), doc)
	if err != nil {
		s.failWith(w, err)
		return
	}

	filename := rendering.PDFFilename(strings.TrimSpace(doc.PersonalInfo.Name), s.now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}
