package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	inner, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: inner,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	return gormDB, mock
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", eventDateValidatorFunc)
	}
}

func newTestRouter(dbHandle *gorm.DB) *gin.Engine {
	router := setupRouter()
	publicRoutes(router, dbHandle)
	authorizedRoutes(router, dbHandle)
	return router
}

func sessionToken(t *testing.T, mock sqlmock.Sqlmock, user *models.User, role types.RoleName) string {
	token, err := utils.GenerateJWT(user, role)
	assert.Nil(t, err)
	// Auth middleware looks the raw token up in active_sessions.
	mock.ExpectQuery(`SELECT (.+) FROM "active_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id"}).
			AddRow(1, token, user.ID))
	return token
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	dbHandle, _ := NewMockDB()
	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	publicRoutes(router, dbHandle)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/events", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestProtectedRoutesRequireToken() {
	dbHandle, _ := NewMockDB()
	router := newTestRouter(dbHandle)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/tickets", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 401, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/tickets", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestCheckSession() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	user := models.User{ID: 7, Name: "Test User", Email: "someone@example.com"}
	token := sessionToken(s.T(), mock, &user, types.ROLE_USER)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/users/check-session", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	assert.True(s.T(), gjson.Get(w.Body.String(), "success").Bool())
}

func (s *TestSuite) TestUserListIsAdminOnly() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	user := models.User{ID: 7, Email: "someone@example.com"}
	token := sessionToken(s.T(), mock, &user, types.ROLE_USER)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func (s *TestSuite) TestRegisterValidation() {
	dbHandle, _ := NewMockDB()
	router := newTestRouter(dbHandle)

	body := map[string]any{"email": "not-an-email", "password": "123"}
	sbody, _ := json.Marshal(&body)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/users/register", strings.NewReader(string(sbody)))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 422, w.Code)
	assert.False(s.T(), gjson.Get(w.Body.String(), "success").Bool())
}

func (s *TestSuite) TestRegisterDuplicateEmail() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	body := map[string]any{"email": "someone@example.com", "password": "secret123"}
	sbody, _ := json.Marshal(&body)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/users/register", strings.NewReader(string(sbody)))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)
	assert.Equal(s.T(), "email already exists", gjson.Get(w.Body.String(), "msg").String())
}

func (s *TestSuite) TestLoginUnknownEmail() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}))

	body := map[string]any{"email": "nobody@example.com", "password": "secret123"}
	sbody, _ := json.Marshal(&body)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/users/login", strings.NewReader(string(sbody)))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 401, w.Code)
	assert.Equal(s.T(), "wrong credentials", gjson.Get(w.Body.String(), "msg").String())
}

func (s *TestSuite) TestEventsList() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	mock.ExpectQuery(`SELECT (.+) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "tickets_available", "venue_id", "category_id"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/events", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	assert.True(s.T(), gjson.Valid(w.Body.String()))
}

func (s *TestSuite) TestGetEventNotFound() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	mock.ExpectQuery(`SELECT (.+) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/events/getevent/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 404, w.Code)
}

func (s *TestSuite) TestEventStats() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/events/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), int64(12), gjson.Get(body, "totalEvents").Int())
	assert.Equal(s.T(), int64(4), gjson.Get(body, "completedEvents").Int())
	assert.Equal(s.T(), int64(30), gjson.Get(body, "totalBookings").Int())
}

func (s *TestSuite) TestVenuesList() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	mock.ExpectQuery(`SELECT (.+) FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "city", "capacity", "is_available"}).
			AddRow(1, "City Hall", "NL", "Amsterdam", 500, true))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/venues", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), "City Hall", gjson.Get(body, "0.venue_name").String())
	assert.Equal(s.T(), int64(500), gjson.Get(body, "0.capacity").Int())
}

func (s *TestSuite) TestBookTicketsValidation() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	user := models.User{ID: 3, Email: "someone@example.com"}
	token := sessionToken(s.T(), mock, &user, types.ROLE_USER)

	// Count of zero must fail binding before any query runs.
	body := map[string]any{"ticket_count": 0, "user_id": 3, "event_id": 1}
	sbody, _ := json.Marshal(&body)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/tickets/book", strings.NewReader(string(sbody)))
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 422, w.Code)
}

func (s *TestSuite) TestCreateEventPastDateRejected() {
	dbHandle, mock := NewMockDB()
	router := newTestRouter(dbHandle)

	user := models.User{ID: 3, Email: "someone@example.com"}
	token := sessionToken(s.T(), mock, &user, types.ROLE_USER)

	form := make(map[string]string)
	form["event_name"] = "Old Concert"
	form["organizer_name"] = "Someone"
	form["event_date"] = time.Now().UTC().AddDate(0, 0, -2).Format("2006-01-02")
	form["venue_id"] = "1"
	form["category_id"] = "1"

	var sb strings.Builder
	for k, v := range form {
		sb.WriteString(fmt.Sprintf("%s=%s&", k, v))
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/events/add", strings.NewReader(strings.TrimSuffix(sb.String(), "&")))
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 422, w.Code)
}

func (s *TestSuite) TestEventErrorMessages() {
	status, msg := eventErrorResponse(utils.ErrVenueNotFound)
	assert.Equal(s.T(), http.StatusNotFound, status)
	assert.Equal(s.T(), "Venue not found", msg)

	status, msg = eventErrorResponse(gorm.ErrRecordNotFound)
	assert.Equal(s.T(), http.StatusNotFound, status)
	assert.Equal(s.T(), "Event not found", msg)

	status, msg = eventErrorResponse(utils.ErrDateConflict)
	assert.Equal(s.T(), http.StatusBadRequest, status)
	assert.Equal(s.T(), "Venue is not available for this particular date", msg)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
