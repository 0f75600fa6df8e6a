package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"todoapi/internal/auth"
)

func uidEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := GetUserIDFromContext(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(strconv.FormatInt(uid, 10)))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// Тест: SetLoginCookie + WithAuth — user_id попадает в контекст
func TestWithAuth_ValidCookieSetsUserID(t *testing.T) {
	j := auth.NewJWT("test-secret", time.Hour)
	token, err := j.Issue(77)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rrCookie := httptest.NewRecorder()
	SetLoginCookie(rrCookie, token, time.Hour)
	cookies := rrCookie.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rr := httptest.NewRecorder()
	WithAuth(j)(uidEcho()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "77" {
		t.Fatalf("expected 200/77 with valid cookie, got %d/%q", rr.Code, rr.Body.String())
	}
}

// Тест: Bearer-заголовок имеет приоритет над cookie
func TestWithAuth_BearerHeader(t *testing.T) {
	j := auth.NewJWT("test-secret", time.Hour)
	token, _ := j.Issue(5)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	rr := httptest.NewRecorder()
	WithAuth(j)(uidEcho()).ServeHTTP(rr, req)

	if rr.Body.String() != "5" {
		t.Fatalf("expected uid 5 from header, got %q", rr.Body.String())
	}
}

// Тест: без токена — user_id не устанавливается
func TestWithAuth_NoTokenLeavesAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WithAuth(auth.NewJWT("any-secret", time.Hour))(uidEcho()).ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected anonymous request, got %d", rr.Code)
	}
}

// Тест: токен с чужим секретом — user_id не устанавливается
func TestWithAuth_InvalidToken(t *testing.T) {
	token, _ := auth.NewJWT("secret-A", time.Hour).Issue(5)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	WithAuth(auth.NewJWT("secret-B", time.Hour))(uidEcho()).ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("user id must not be set with invalid token, got %d", rr.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(uidEcho())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if rr.Body.String() != "{\"message\":\"unauthorized\"}\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(rr, req.WithContext(WithUserID(req.Context(), 9)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
