package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/idilsaglam/todoc/internal/model"
)

func newClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, func() string { return token })
}

func TestListOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodGet || r.URL.Path != "/api/todos/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"title":"Buy milk","description":"","is_completed":false,"created_at":"2026-01-02T15:04:05Z"}]`)
	})

	items, err := c.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
	if len(items) != 1 || items[0].ID != 1 || items[0].Title != "Buy milk" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestListAttachesBearerToken(t *testing.T) {
	var gotAuth, gotReqID string
	c := newClient(t, "tok123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		io.WriteString(w, `[]`)
	})

	if _, err := c.List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatal("expected a request id header")
	}
}

func TestGetFetchesOneItem(t *testing.T) {
	var gotMethod, gotPath string
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		io.WriteString(w, `{"id":7,"title":"Buy milk","description":"2 liters","is_completed":false,"created_at":"2026-01-02T15:04:05Z"}`)
	})

	item, err := c.Get(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodGet || gotPath != "/api/todos/7" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if item.ID != 7 || item.Title != "Buy milk" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestGetNotFound(t *testing.T) {
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Todo not found"}`)
	})

	_, err := c.Get(context.Background(), 999)
	if !IsNotFound(err) {
		t.Fatalf("expected a 404, got %v", err)
	}
}

func TestCreateSendsTitleAndDescription(t *testing.T) {
	var gotBody map[string]any
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/todos/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":3,"title":"New task","description":"Details","is_completed":false,"created_at":"2026-02-04T07:49:05Z"}`)
	})

	item, err := c.Create(context.Background(), "New task", "Details")
	if err != nil {
		t.Fatal(err)
	}
	if item.ID != 3 {
		t.Fatalf("expected server-assigned id 3, got %d", item.ID)
	}
	if gotBody["title"] != "New task" || gotBody["description"] != "Details" {
		t.Fatalf("unexpected create payload: %v", gotBody)
	}
}

func TestCreateOmitsEmptyDescription(t *testing.T) {
	var gotBody map[string]any
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":1,"title":"t","description":"","is_completed":false,"created_at":"2026-02-04T07:49:05Z"}`)
	})

	if _, err := c.Create(context.Background(), "t", ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := gotBody["description"]; ok {
		t.Fatalf("empty description should be omitted: %v", gotBody)
	}
}

func TestUpdateTogglePutsOnlyTheFlag(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		io.WriteString(w, `{"id":7,"title":"t","description":"","is_completed":true,"created_at":"2026-02-04T07:49:05Z"}`)
	})

	item, err := c.Update(context.Background(), 7, model.ToggleComplete{IsCompleted: true})
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/todos/7" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if gotBody != `{"is_completed":true}` {
		t.Fatalf("toggle payload must carry only the flag, got %s", gotBody)
	}
	if !item.IsCompleted {
		t.Fatal("expected updated item back")
	}
}

func TestUpdateEditPutsTitleAndDescription(t *testing.T) {
	var gotBody string
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		io.WriteString(w, `{"id":7,"title":"New","description":"Desc","is_completed":false,"created_at":"2026-02-04T07:49:05Z"}`)
	})

	if _, err := c.Update(context.Background(), 7, model.EditFields{Title: "New", Description: "Desc"}); err != nil {
		t.Fatal(err)
	}
	if gotBody != `{"title":"New","description":"Desc"}` {
		t.Fatalf("unexpected edit payload: %s", gotBody)
	}
}

func TestDeleteIgnoresResponseBody(t *testing.T) {
	var gotMethod, gotPath string
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		// the server echoes the deleted item; callers do not care
		io.WriteString(w, `{"id":5,"title":"gone","description":"","is_completed":false,"created_at":"2026-02-04T07:49:05Z"}`)
	})

	if err := c.Delete(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/todos/5" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestDeleteNotFoundSurfacesStatusError(t *testing.T) {
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Todo not found"}`)
	})

	err := c.Delete(context.Background(), 999)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected a 404, got %v", err)
	}
	var serr *StatusError
	if !errors.As(err, &serr) || serr.Detail != "Todo not found" {
		t.Fatalf("expected server detail, got %v", err)
	}
}

func TestLoginReturnsAccessToken(t *testing.T) {
	var gotBody map[string]string
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"access_token":"jwt-abc","token_type":"bearer"}`)
	})

	token, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if token != "jwt-abc" {
		t.Fatalf("got token %q", token)
	}
	if gotBody["username"] != "alice" || gotBody["password"] != "secret" {
		t.Fatalf("unexpected login payload: %v", gotBody)
	}
}

func TestLoginRejectionCarriesDetail(t *testing.T) {
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Invalid credentials"}`)
	})

	_, err := c.Login(context.Background(), "alice", "wrong")
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if serr.Code != http.StatusUnauthorized || serr.Detail != "Invalid credentials" {
		t.Fatalf("unexpected error: %+v", serr)
	}
}
