package httpx

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","foo":1}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	if DecodeJSON(w, r, &dst) {
		t.Fatalf("unknown field accepted")
	}
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDecodeJSONRejectsMediaType(t *testing.T) {
	var dst struct{}
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	if DecodeJSON(w, r, &dst) {
		t.Fatalf("wrong media type accepted")
	}
	if w.Code != 415 {
		t.Fatalf("expected 415, got %d", w.Code)
	}
}

func TestIdentityHeadersRoundTrip(t *testing.T) {
	id := Identity{ID: 7, Email: "a@b.c", Role: "admin"}
	r := httptest.NewRequest("GET", "/", nil)
	id.SetIdentityHeaders(r.Header)
	got, ok := IdentityFromHeaders(r)
	if !ok {
		t.Fatalf("identity not read back")
	}
	if got != id {
		t.Fatalf("unexpected: %+v", got)
	}
	if !got.IsAdmin() {
		t.Fatalf("admin flag lost")
	}
}

func TestIdentityFromHeadersMissing(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := IdentityFromHeaders(r); ok {
		t.Fatalf("expected no identity")
	}
	r.Header.Set(HeaderUserID, "abc")
	if _, ok := IdentityFromHeaders(r); ok {
		t.Fatalf("expected rejection of non-numeric id")
	}
}

func TestParsePage(t *testing.T) {
	q := url.Values{}
	p := ParsePage(q)
	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("defaults: %+v", p)
	}
	q.Set("page", "4")
	q.Set("limit", "25")
	p = ParsePage(q)
	if p.Page != 4 || p.Limit != 25 {
		t.Fatalf("parsed: %+v", p)
	}
	q.Set("page", "junk")
	p = ParsePage(q)
	if p.Page != 1 {
		t.Fatalf("junk page should default: %+v", p)
	}
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders/12", nil)
	r.SetPathValue("id", "12")
	id, ok := PathID(r, "id")
	if !ok || id != 12 {
		t.Fatalf("got %d %v", id, ok)
	}
	r.SetPathValue("id", "zero")
	if _, ok := PathID(r, "id"); ok {
		t.Fatalf("non-numeric id accepted")
	}
	r.SetPathValue("id", "0")
	if _, ok := PathID(r, "id"); ok {
		t.Fatalf("zero id accepted")
	}
}
