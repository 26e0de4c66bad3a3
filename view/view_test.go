package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-carteira/i18n"
)

func TestRenderUsesRequestLanguage(t *testing.T) {
	for lang, want := range map[string]string{"pt": "Início", "en": "Home"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(i18n.WithLang(req.Context(), lang))
		w := httptest.NewRecorder()
		if err := Render(w, req, http.StatusOK, "home.html", nil); err != nil {
			t.Fatalf("render %s: %v", lang, err)
		}
		body := w.Body.String()
		if !strings.Contains(body, want) {
			t.Errorf("lang %s: body missing %q", lang, want)
		}
		if !strings.Contains(body, `lang="`+lang+`"`) {
			t.Errorf("lang %s: html lang attribute not set", lang)
		}
	}
}

func TestRenderStatusAndMoney(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ativos", nil)
	w := httptest.NewRecorder()
	data := map[string]any{
		"Assets": []struct {
			Name   string
			Value  float64
			Client *struct{ Name string }
		}{{Name: "Ação X", Value: 7.25}},
	}
	if err := Render(w, req, http.StatusTeapot, "assets.html", data); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "R$ 7,25") {
		t.Errorf("money not formatted: %s", w.Body.String())
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	w := httptest.NewRecorder()
	err := Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing.html", nil)
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if w.Body.Len() != 0 {
		t.Errorf("partial output written on error")
	}
}

func TestDictHelper(t *testing.T) {
	dict := Funcs(httptest.NewRequest(http.MethodGet, "/", nil))["dict"].(func(...any) map[string]any)
	if m := dict("a", 1, "b"); m != nil {
		t.Errorf("odd args should give nil, got %v", m)
	}
	if m := dict("a", 1); m["a"] != 1 {
		t.Errorf("dict = %v", m)
	}
}
