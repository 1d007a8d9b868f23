package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTransportSetsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	c := NewClient("movieprompt-test", 5*time.Second)
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if gotUA != "movieprompt-test" {
		t.Errorf("Expected UA movieprompt-test, got %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected JSON accept header, got %q", gotAccept)
	}
}

func TestTransportKeepsExplicitUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("User-Agent", "custom")

	resp, err := NewClient("default", time.Second).Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if gotUA != "custom" {
		t.Errorf("Expected custom UA, got %q", gotUA)
	}
	if req.Header.Get("Accept") != "" {
		t.Error("Expected caller request to stay unmodified")
	}
}
