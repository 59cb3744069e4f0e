package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/emre/schoolrecords/internal/app/controllers"
	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/app/routes"
	"github.com/emre/schoolrecords/internal/app/services"
	"github.com/emre/schoolrecords/internal/middleware"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
	"github.com/emre/schoolrecords/internal/pkg/auth"
)

// fakeStore is an in-memory backend implementing the service store
// interfaces, so the full HTTP stack runs without Postgres.
type fakeStore struct {
	nextID   int64
	students map[int64]*models.Student
	admins   map[int64]*models.Admin
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		students: make(map[int64]*models.Student),
		admins:   make(map[int64]*models.Admin),
	}
}

func (f *fakeStore) Insert(_ context.Context, s *models.Student) (int64, error) {
	s.ID = f.nextID
	f.nextID++
	cp := *s
	f.students[s.ID] = &cp
	return s.ID, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Student not found", "id")
	}
	cp := *s
	cp.Password = ""
	return &cp, nil
}

func (f *fakeStore) GetWithPassword(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Student not found", "id")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if strings.EqualFold(s.Email, email) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeStore) AdmissionNumberInUse(_ context.Context, number string, excludeID int64) (bool, error) {
	for _, s := range f.students {
		if s.ID != excludeID && s.AdmissionNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Update(_ context.Context, s *models.Student) error {
	if _, ok := f.students[s.ID]; !ok {
		return apperrors.NewNotFoundError("Student not found", "id")
	}
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Student not found", "id")
	}
	delete(f.students, id)
	return s, nil
}

func (f *fakeStore) Search(_ context.Context, keyword string) ([]*models.Student, error) {
	var out []*models.Student
	kw := strings.ToLower(keyword)
	for _, s := range f.students {
		if kw == "" || strings.Contains(strings.ToLower(s.Name), kw) ||
			strings.Contains(strings.ToLower(s.Email), kw) ||
			strings.Contains(strings.ToLower(s.AdmissionNumber), kw) ||
			strings.Contains(strings.ToLower(s.Class), kw) {
			cp := *s
			cp.Password = ""
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string, excludeStudentID int64) (*models.AccountRef, error) {
	for _, s := range f.students {
		if s.ID != excludeStudentID && strings.EqualFold(s.Email, email) {
			return &models.AccountRef{ID: s.ID, Role: models.RoleStudent}, nil
		}
	}
	for _, a := range f.admins {
		if strings.EqualFold(a.Email, email) {
			return &models.AccountRef{ID: a.ID, Role: models.RoleAdmin}, nil
		}
	}
	return nil, nil
}

type fakeAdminStore struct{ f *fakeStore }

func (a fakeAdminStore) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, ad := range a.f.admins {
		if strings.EqualFold(ad.Email, email) {
			cp := *ad
			return &cp, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

// testStorage discards uploaded files.
type testStorage struct{}

func (testStorage) SaveFile(fh *multipart.FileHeader) (string, error) { return fh.Filename, nil }
func (testStorage) DeleteFile(string) error                           { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret-key",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})

	authService := services.NewAuthService(store, store, fakeAdminStore{store}, hasher, jwtService, zerolog.Nop())
	studentService := services.NewStudentService(store, store, hasher, testStorage{}, zerolog.Nop())
	profileService := services.NewProfileUpdateService(store, store, hasher, zerolog.Nop())

	studentController := controllers.NewStudentController(authService, studentService, profileService, testStorage{})
	adminController := controllers.NewAdminController(authService, studentService, profileService, testStorage{})
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.New()
	routes.SetupRoutes(router, studentController, adminController, authMiddleware)
	return router, store
}

func seedAdmin(store *fakeStore) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Admin1234"), bcrypt.MinCost)
	store.admins[9000] = &models.Admin{ID: 9000, Email: "head@school.test", Password: string(hash)}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registrationBody() map[string]any {
	return map[string]any{
		"name":            "Ann Lee",
		"age":             15,
		"class":           "9B",
		"admissionNumber": "ADM-1001",
		"email":           "Ann@X.Com",
		"password":        "Secret123",
	}
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/student/register", "", registrationBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in registration response")
	}
	return token
}

func adminToken(t *testing.T, router *gin.Engine, store *fakeStore) string {
	t.Helper()
	seedAdmin(store)
	w := doJSON(t, router, http.MethodPost, "/api/admin/login", "", map[string]any{
		"email":    "head@school.test",
		"password": "Admin1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login status = %d, body %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("no token in admin login response")
	}
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/student/register", "", registrationBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	user, _ := body["user"].(map[string]any)
	if user == nil {
		t.Fatal("no user object in response")
	}
	if user["email"] != "ann@x.com" {
		t.Errorf("email = %v, want %q", user["email"], "ann@x.com")
	}
	if _, hasPassword := user["password"]; hasPassword {
		t.Error("response leaks the password field")
	}
}

func TestRegisterDuplicateEmailReturns409(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	dup := registrationBody()
	dup["email"] = "ANN@x.com"
	dup["admissionNumber"] = "ADM-2002"
	w := doJSON(t, router, http.MethodPost, "/api/student/register", "", dup)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["field"] != "email" {
		t.Errorf("field = %v, want %q", body["field"], "email")
	}
}

func TestRegisterMissingFieldReturns400(t *testing.T) {
	router, _ := newTestRouter(t)

	body := registrationBody()
	delete(body, "email")
	w := doJSON(t, router, http.MethodPost, "/api/student/register", "", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp := decodeBody(t, w); resp["field"] != "email" {
		t.Errorf("field = %v, want %q", resp["field"], "email")
	}
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/student/login", "", map[string]any{
		"email":    "ANN@X.COM",
		"password": "Secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/student/login", "", map[string]any{
		"email":    "ann@x.com",
		"password": "WrongPass1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Invalid email or password" {
		t.Errorf("message = %v", body["message"])
	}
	if body["field"] != "credentials" {
		t.Errorf("field = %v, want %q", body["field"], "credentials")
	}
}

func TestProfileRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/student/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestProfileClassOnlyUpdate(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/student/profile", token, map[string]any{
		"class": "10A",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	student, _ := body["student"].(map[string]any)
	if student == nil {
		t.Fatal("no student object in response")
	}
	if student["class"] != "10A" {
		t.Errorf("class = %v", student["class"])
	}
	if student["email"] != "ann@x.com" {
		t.Errorf("email changed: %v", student["email"])
	}
	if student["admissionNumber"] != "ADM-1001" {
		t.Errorf("admission number changed: %v", student["admissionNumber"])
	}
}

func TestAdminRoutesRejectStudentToken(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/admin/students", token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestAdminListAndDelete(t *testing.T) {
	router, store := newTestRouter(t)
	registerAndLogin(t, router)
	token := adminToken(t, router, store)

	w := doJSON(t, router, http.MethodGet, "/api/admin/students", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}

	students, _ := body["students"].([]any)
	if len(students) != 1 {
		t.Fatalf("students length = %d", len(students))
	}
	id := int64(students[0].(map[string]any)["id"].(float64))

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/admin/students/%d", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}
	deleted, _ := decodeBody(t, w)["deletedStudent"].(map[string]any)
	if deleted == nil || deleted["email"] != "ann@x.com" {
		t.Errorf("deletedStudent = %v", deleted)
	}
}

func TestAdminDeleteUnknownReturns404(t *testing.T) {
	router, store := newTestRouter(t)
	token := adminToken(t, router, store)

	w := doJSON(t, router, http.MethodDelete, "/api/admin/students/424242", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestAdminMalformedIDReturns400(t *testing.T) {
	router, store := newTestRouter(t)
	token := adminToken(t, router, store)

	w := doJSON(t, router, http.MethodGet, "/api/admin/students/abc", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["message"] != "Invalid student ID format" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestAdminUpdateAdmissionNumber(t *testing.T) {
	router, store := newTestRouter(t)
	registerAndLogin(t, router)
	token := adminToken(t, router, store)

	w := doJSON(t, router, http.MethodPut, "/api/admin/students/1", token, map[string]any{
		"admissionNumber": "ADM-9000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	student, _ := decodeBody(t, w)["student"].(map[string]any)
	if student == nil || student["admissionNumber"] != "ADM-9000" {
		t.Errorf("student = %v", student)
	}
}

func TestStudentCannotChangeAdmissionNumber(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/student/profile", token, map[string]any{
		"admissionNumber": "ADM-9999",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["field"] != "admissionNumber" {
		t.Errorf("field = %v", body["field"])
	}
}
