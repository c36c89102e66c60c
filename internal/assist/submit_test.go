package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestSubmitPreview_RoundTrip(t *testing.T) {
	var stored []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var doc types.Document
			require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			stored, _ = json.Marshal(doc)
			http.SetCookie(w, &http.Cookie{Name: "cv_session", Value: "abc"})
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			ck, err := r.Cookie("cv_session")
			if err != nil || ck.Value != "abc" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(stored)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	doc := types.NewDocument()
	doc.PersonalInfo.Name = "Ada"

	sub, err := client.SubmitPreview(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/preview", sub.Location)

	got, err := client.FetchPreview(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.PersonalInfo.Name)
}

func TestSubmitPreview_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).SubmitPreview(context.Background(), types.NewDocument())

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, http.StatusBadRequest, submitErr.StatusCode)
	assert.Equal(t, "No data provided", submitErr.Message)
}
