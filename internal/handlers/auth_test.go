package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ridebuddy/ridebuddy-backend/internal/middleware"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", Register(db))
	r.POST("/auth/login", Login(db))
	r.GET("/users/profile", middleware.AuthMiddleware(), GetProfile(db))
	return r
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(r, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":     "dana@example.com",
		"password":  "secret123",
		"firstName": "Dana",
		"lastName":  "Driver",
		"phone":     "+15550001",
		"isDriver":  true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["token"] == "" {
		t.Fatal("expected a token on registration")
	}

	// Duplicate email
	w = performRequest(r, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":     "dana@example.com",
		"password":  "secret123",
		"firstName": "Dana",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}

	// Wrong password
	w = performRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = performRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "dana@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("expected a token on login")
	}

	// Token grants access to the profile
	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	if user["email"] != "dana@example.com" || user["isDriver"] != true {
		t.Fatalf("unexpected profile payload: %s", rec.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(r, http.MethodGet, "/users/profile", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, false)
	r := newRouter(db, user.ID, false)

	w := performRequest(r, http.MethodPut, "/users/profile", map[string]interface{}{
		"phoneNumber": "+15559999",
		"vehicleInfo": "Blue sedan",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	updated := decodeBody(t, w)["user"].(map[string]interface{})
	if updated["phoneNumber"] != "+15559999" {
		t.Fatalf("expected updated phone, got %v", updated["phoneNumber"])
	}
	// Untouched fields keep their values
	if updated["firstName"] != user.FirstName {
		t.Fatalf("expected first name unchanged, got %v", updated["firstName"])
	}
}
