package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"luma/internal/catalog"
	"luma/internal/middleware"
	"luma/internal/session"
)

// newTestAPI returns an API backed by a local-only catalog: no database,
// no snapshot writer, no object storage.
func newTestAPI(t *testing.T) *API {
	t.Helper()
	return New(catalog.New(nil, nil, 0), nil, nil, nil, nil, nil)
}

// testSession is the fixed acting user injected into every test request.
var testSession = &session.Data{
	UserID:    uuid.New(),
	Email:     "editor@luma.local",
	Name:      "Edina Editor",
	Role:      "editor",
	CreatedAt: time.Now().UTC(),
}

// testCSRFToken satisfies the double-submit check: the request builders
// send it as both cookie and header.
const testCSRFToken = "csrf-token-for-tests"

// testRouter serves the production /api route table with a middleware
// that plants testSession in the context in place of LoadSession.
func testRouter(api *API) chi.Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.SessionKey, testSession)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Mount("/api", api.Routes(nil))
	return r
}

// doJSON performs a request with an optional JSON body and decodes the
// JSON response into out (when out is non-nil).
func doJSON(t *testing.T, router chi.Router, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: testCSRFToken})
	req.Header.Set(middleware.CSRFHeaderName, testCSRFToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if out != nil && rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
			t.Fatalf("unmarshal response %q: %v", rr.Body.String(), err)
		}
	}
	return rr
}

// doRaw serves a pre-built request and returns the recorder.
func doRaw(t *testing.T, router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// multipartUpload builds a multipart request carrying one file part. The
// handlers sniff the content type from the bytes, not the part header.
func multipartUpload(t *testing.T, path, filename string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: testCSRFToken})
	req.Header.Set(middleware.CSRFHeaderName, testCSRFToken)
	return req
}
