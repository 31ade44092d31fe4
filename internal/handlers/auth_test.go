package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"relay_control/internal/config"
	"relay_control/internal/repository"
	"relay_control/internal/repository/db"
	"relay_control/internal/service"

	"github.com/gin-gonic/gin"
)

// serve runs one request against r; body may be empty.
func serve(r *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := serve(r, http.MethodPost, "/auth/sign-up", `{"username":"operator","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	if id := decodeBody(t, w)["id"]; id != float64(42) {
		t.Fatalf("expected id=42, got %v", id)
	}

	w = serve(r, http.MethodPost, "/auth/sign-in", `{"username":"operator","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	if tok := decodeBody(t, w)["token"]; tok != "tok123" {
		t.Fatalf("expected token tok123, got %v", tok)
	}

	w = serve(r, http.MethodPost, "/auth/sign-in", `{"username":1}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_SignInFailure(t *testing.T) {
	auth := &mockAuth{genTokenErr: service.ErrInvalidPassword}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := serve(r, http.MethodPost, "/auth/sign-in", `{"username":"operator","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("sign-in status=%d, want 401", w.Code)
	}
}

func TestSignUp_ClosedByDefault(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "relay.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	auth := service.NewAuthService(repository.NewUserRepository(conn), config.AuthSettings{
		SigningKey: "0123456789abcdef0123456789abcdef",
		TokenTTL:   time.Hour,
	})
	r := newTestRouter(&service.Service{Authorization: auth})

	w := serve(r, http.MethodPost, "/auth/sign-up", `{"username":"first","password":"s3cret"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first operator: status=%d, body=%s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/auth/sign-up", `{"username":"stranger","password":"p"}`, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("anonymous sign-up: status=%d, want 403 (body=%s)", w.Code, w.Body.String())
	}
	if w = serve(r, http.MethodPost, "/auth/sign-in", `{"username":"stranger","password":"p"}`, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("refused account signed in: %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/auth/sign-in", `{"username":"first","password":"s3cret"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in: status=%d, body=%s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)

	w = serve(r, http.MethodPost, "/auth/sign-up", `{"username":"second","password":"p"}`, authHeader(token))
	if w.Code != http.StatusOK {
		t.Fatalf("invited sign-up: status=%d, body=%s", w.Code, w.Body.String())
	}
	w = serve(r, http.MethodPost, "/auth/sign-up", `{"username":"second","password":"p"}`, authHeader(token))
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate sign-up: status=%d, want 409", w.Code)
	}
}

func TestSignUp_PassesInviter(t *testing.T) {
	auth := &mockAuth{signUpID: 2, parseID: 1}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := serve(r, http.MethodPost, "/auth/sign-up", `{"username":"second","password":"p"}`, authHeader("operator-token"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	want := service.SignUpParams{Username: "second", Password: "p", InvitedBy: 1}
	if auth.lastSignUp != want || auth.lastParseToken != "operator-token" {
		t.Fatalf("SignUp got %+v (token %q), want %+v", auth.lastSignUp, auth.lastParseToken, want)
	}
}

func TestSignUp_Errors(t *testing.T) {
	cases := []struct {
		name     string
		header   http.Header
		parseErr error
		err      error
		code     int
		wantMsg  string
		noCall   bool
	}{
		{name: "closed", err: service.ErrSignUpClosed, code: http.StatusForbidden, wantMsg: "sign-up is closed"},
		{name: "taken", err: fmt.Errorf("sign up %q: %w", "operator", service.ErrUsernameTaken), code: http.StatusConflict, wantMsg: "username already taken"},
		{name: "blank password", err: service.ErrEmptyPassword, code: http.StatusBadRequest},
		{name: "store failure", err: errors.New("disk I/O error"), code: http.StatusInternalServerError, wantMsg: "sign-up failed"},
		{name: "bad bearer", header: authHeader("forged"), parseErr: service.ErrInvalidToken, code: http.StatusUnauthorized, wantMsg: "invalid or expired token", noCall: true},
		{name: "wrong scheme", header: http.Header{"Authorization": {"Basic abc"}}, code: http.StatusUnauthorized, noCall: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{signUpErr: tc.err, parseID: 1, parseErr: tc.parseErr}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := serve(r, http.MethodPost, "/auth/sign-up", `{"username":"operator","password":"p"}`, tc.header)
			if w.Code != tc.code {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.code, w.Body.String())
			}
			if tc.wantMsg != "" {
				if msg := decodeBody(t, w)["error"]; msg != tc.wantMsg {
					t.Fatalf("error=%v, want %q", msg, tc.wantMsg)
				}
			}
			if tc.noCall && auth.signUpCalls != 0 {
				t.Fatalf("SignUp called %d times", auth.signUpCalls)
			}
		})
	}
}
