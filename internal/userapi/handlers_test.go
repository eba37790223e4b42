package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

func TestMain(m *testing.M) {
	obs.InitLogger("user-service-test")
	os.Exit(m.Run())
}

type memUsers struct {
	users  []model.User
	nextID uint
}

func newMemUsers() *memUsers { return &memUsers{nextID: 1} }

func (s *memUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.ID = s.nextID
	s.nextID++
	s.users = append(s.users, *u)
	return nil
}

func (s *memUsers) Get(_ context.Context, id uint) (model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (s *memUsers) List(_ context.Context, role string, page model.PageRequest) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range s.users {
		if role != "" && string(u.Role) != role {
			continue
		}
		matched = append(matched, u)
	}
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memUsers) UpdateFullName(_ context.Context, id uint, fullName string) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].FullName = fullName
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memUsers) Delete(_ context.Context, id uint) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func newTestApp() (*App, *memUsers) {
	st := newMemUsers()
	return NewApp(config.Config{}, st), st
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	app, st := newTestApp()
	h := NewRouter(app)

	rec := doRequest(t, h, http.MethodPost, "/users", map[string]string{
		"email":    "dave@example.com",
		"fullName": "Dave Lee",
		"role":     "admin",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if st.users[0].Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %s", st.users[0].Role)
	}
	// No password supplied: the account gets the documented default.
	if bcrypt.CompareHashAndPassword([]byte(st.users[0].Password), []byte(defaultPassword)) != nil {
		t.Fatal("expected default password hash")
	}
}

func TestCreateWithExplicitPassword(t *testing.T) {
	app, st := newTestApp()
	h := NewRouter(app)

	rec := doRequest(t, h, http.MethodPost, "/users", map[string]string{
		"email":    "erin@example.com",
		"fullName": "Erin Cho",
		"password": "my-own-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if bcrypt.CompareHashAndPassword([]byte(st.users[0].Password), []byte("my-own-pass")) != nil {
		t.Fatal("expected supplied password hash")
	}
	if st.users[0].Role != model.RoleUser {
		t.Fatalf("expected default role user, got %s", st.users[0].Role)
	}
}

func TestCreateValidation(t *testing.T) {
	app, _ := newTestApp()
	h := NewRouter(app)

	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing email", map[string]string{"fullName": "Dave Lee"}, "Email and full name are required"},
		{"missing name", map[string]string{"email": "a@b.co"}, "Email and full name are required"},
		{"bad role", map[string]string{"email": "a@b.co", "fullName": "Dave Lee", "role": "root"}, "role must be one of [user, admin]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/users", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp map[string]string
			_ = json.Unmarshal(rec.Body.Bytes(), &resp)
			if resp["error"] != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, resp["error"])
			}
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	app, _ := newTestApp()
	h := NewRouter(app)

	body := map[string]string{"email": "dave@example.com", "fullName": "Dave Lee"}
	if rec := doRequest(t, h, http.MethodPost, "/users", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d", rec.Code)
	}
	rec := doRequest(t, h, http.MethodPost, "/users", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Email already exists" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestListWithRoleFilter(t *testing.T) {
	app, st := newTestApp()
	h := NewRouter(app)
	st.users = []model.User{
		{ID: 1, Email: "a@x.y", FullName: "A One", Role: model.RoleUser},
		{ID: 2, Email: "b@x.y", FullName: "B Two", Role: model.RoleAdmin},
		{ID: 3, Email: "c@x.y", FullName: "C Three", Role: model.RoleUser},
	}
	st.nextID = 4

	rec := doRequest(t, h, http.MethodGet, "/users?role=user", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data       []model.User     `json:"data"`
		Pagination model.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.Total != 2 {
		t.Fatalf("unexpected listing: %d users, total %d", len(resp.Data), resp.Pagination.Total)
	}
}

func TestGetNeverLeaksPassword(t *testing.T) {
	app, st := newTestApp()
	h := NewRouter(app)
	st.users = []model.User{{ID: 1, Email: "a@x.y", FullName: "A One", Password: "$2a$10$hash", Role: model.RoleUser}}
	st.nextID = 2

	rec := doRequest(t, h, http.MethodGet, "/users/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("$2a$10$hash")) || bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Fatalf("response leaks credentials: %s", rec.Body.String())
	}
}

func TestUpdate(t *testing.T) {
	app, st := newTestApp()
	h := NewRouter(app)
	st.users = []model.User{{ID: 1, Email: "a@x.y", FullName: "Old Name", Role: model.RoleUser}}
	st.nextID = 2

	rec := doRequest(t, h, http.MethodPut, "/users/1", map[string]string{"fullName": "New Name"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if st.users[0].FullName != "New Name" {
		t.Fatalf("update not applied: %+v", st.users[0])
	}

	rec = doRequest(t, h, http.MethodPut, "/users/1", map[string]string{"fullName": " x "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short name: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPut, "/users/99", map[string]string{"fullName": "New Name"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user: expected 404, got %d", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	app, st := newTestApp()
	h := NewRouter(app)
	st.users = []model.User{{ID: 1, Email: "a@x.y", FullName: "A One", Role: model.RoleUser}}
	st.nextID = 2

	rec := doRequest(t, h, http.MethodDelete, "/users/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(st.users) != 0 {
		t.Fatalf("user not deleted: %+v", st.users)
	}

	rec = doRequest(t, h, http.MethodDelete, "/users/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}
