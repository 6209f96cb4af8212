package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// validation failures answer before the store is touched, so a bare App
// with only a logger is enough here.
func newValidationApp() *App {
	return &App{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestHandleRegister_Validation(t *testing.T) {
	app := newValidationApp()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "empty payload",
			body:    "",
			wantMsg: "Dados ausentes",
		},
		{
			name:    "username too short",
			body:    `{"username": "ab", "password": "senha-segura"}`,
			wantMsg: "Username deve ter pelo menos 3 caracteres",
		},
		{
			name:    "username only whitespace",
			body:    `{"username": "   ", "password": "senha-segura"}`,
			wantMsg: "Username deve ter pelo menos 3 caracteres",
		},
		{
			name:    "username too long",
			body:    `{"username": "` + strings.Repeat("a", 81) + `", "password": "senha-segura"}`,
			wantMsg: "Username muito longo (máximo 80 caracteres)",
		},
		{
			name:    "password too short",
			body:    `{"username": "maria", "password": "curta"}`,
			wantMsg: "Senha deve ter pelo menos 8 caracteres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, app.handleRegister, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), tt.wantMsg) {
				t.Errorf("body = %s, want message %q", w.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestHandleLogin_Validation(t *testing.T) {
	app := newValidationApp()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty payload", body: ""},
		{name: "missing username", body: `{"password": "senha-segura"}`},
		{name: "missing password", body: `{"username": "maria"}`},
		{name: "whitespace username", body: `{"username": "  ", "password": "senha-segura"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, app.handleLogin, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
