package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/httpserver"
	"jobsite/internal/models"
)

func newTestServer(t *testing.T) (*gorm.DB, http.Handler) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Client{}, &models.Job{},
		&models.Estimate{}, &models.Order{}, &models.Trade{}, &models.Service{},
		&models.Material{}, &models.Labor{}, &models.JobFile{}, &models.Report{},
	))
	return db, httpserver.NewRouter(db, zap.NewNop().Sugar())
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// signup registers a user and returns its token and id.
func signup(t *testing.T, h http.Handler, username, password string) (string, uint) {
	rec := doJSON(t, h, http.MethodPost, "/signup", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	return token, uint(id)
}

func TestSignupIssuesTokenAndHidesPassword(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/signup", "", map[string]string{
		"username": "tester", "password": "test",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	require.Equal(t, "success", body["status"])
	require.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "tester", user["username"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "token")
}

func TestSignupDuplicateUsername(t *testing.T) {
	_, h := newTestServer(t)
	signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/signup", "", map[string]string{
		"username": "tester", "password": "test",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "username already exists", decodeMap(t, rec)["error"])
}

func TestSignupInvite(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/signup/invite", "", map[string]interface{}{
		"username": "invitee", "password": "test", "email": "i@example.com", "is_admin": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	require.Equal(t, "success", body["status"])
	require.NotZero(t, body["id"])
	require.NotContains(t, body, "token")
}

func TestLoginWrongPassword(t *testing.T) {
	_, h := newTestServer(t)
	signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/login", "", map[string]string{
		"username": "tester", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, decodeMap(t, rec)["error"])
}

func TestLoginUnknownUsername(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/login", "", map[string]string{
		"username": "nobody", "password": "test",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, decodeMap(t, rec)["error"])
}

func TestLoginSuccess(t *testing.T) {
	_, h := newTestServer(t)
	signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/login", "", map[string]string{
		"username": "tester", "password": "test",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	require.NotEmpty(t, body["token"])
	user, _ := body["user"].(map[string]interface{})
	require.NotContains(t, user, "password")
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/clients", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Please log in", decodeMap(t, rec)["status"])
}

func TestDeleteMissingClient(t *testing.T) {
	_, h := newTestServer(t)
	token, _ := signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodDelete, "/clients/999", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, decodeMap(t, rec)["error"])
}

func TestClientLifecycle(t *testing.T) {
	_, h := newTestServer(t)
	token, _ := signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/clients", token, map[string]string{
		"name": "Acme", "email": "acme@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeMap(t, rec)
	id := fmt.Sprint(int(created["id"].(float64)))

	rec = doJSON(t, h, http.MethodGet, "/clients/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Acme", decodeMap(t, rec)["name"])

	rec = doJSON(t, h, http.MethodPut, "/clients/"+id, token, map[string]string{
		"name": "Acme Ltd", "is_admin": "ignored",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Acme Ltd", decodeMap(t, rec)["name"])

	rec = doJSON(t, h, http.MethodDelete, "/clients/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateJobRequiresName(t *testing.T) {
	_, h := newTestServer(t)
	token, _ := signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/jobs", token, map[string]string{"status": "active"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing required value: 'name'", decodeMap(t, rec)["message"])
}

func TestJobsScopedToOwner(t *testing.T) {
	_, h := newTestServer(t)
	ownerToken, _ := signup(t, h, "owner", "test")
	otherToken, _ := signup(t, h, "other", "test")

	rec := doJSON(t, h, http.MethodPost, "/jobs", ownerToken, map[string]string{"name": "reno"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/jobs", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/jobs", otherToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServiceUpdateBlockedForNonOwner(t *testing.T) {
	db, h := newTestServer(t)
	_, ownerID := signup(t, h, "owner", "test")
	otherToken, _ := signup(t, h, "other", "test")

	job := models.Job{UserID: ownerID}
	require.NoError(t, db.Create(&job).Error)

	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/jobs/%d/services/1", job.ID), otherToken,
		map[string]string{"name": "paint"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEstimateCreateMissingJob(t *testing.T) {
	_, h := newTestServer(t)
	token, _ := signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/jobs/424242/estimates", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "job 424242 does not exist", decodeMap(t, rec)["error"])
}

func TestEstimateTotalCost(t *testing.T) {
	db, h := newTestServer(t)
	token, userID := signup(t, h, "tester", "test")

	job := models.Job{UserID: userID}
	require.NoError(t, db.Create(&job).Error)
	estimate := models.Estimate{JobID: job.ID}
	require.NoError(t, db.Create(&estimate).Error)
	trade := models.Trade{EstimateID: estimate.ID}
	require.NoError(t, db.Create(&trade).Error)
	service := models.Service{TradeID: &trade.ID}
	require.NoError(t, db.Create(&service).Error)

	qty, cpu := 100, 10.0
	require.NoError(t, db.Create(&models.Material{
		Quantity: &qty, CostPerUnit: &cpu, ServiceID: service.ID,
	}).Error)
	hours, cph := 40.0, 100.0
	require.NoError(t, db.Create(&models.Labor{
		Hours: &hours, CostPerHour: &cph, ServiceID: service.ID,
	}).Error)

	rec := doJSON(t, h, http.MethodGet,
		fmt.Sprintf("/jobs/%d/estimates/%d/total_cost", job.ID, estimate.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var total float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &total))
	require.Equal(t, 5000.0, total)
}

func TestReportUpsert(t *testing.T) {
	_, h := newTestServer(t)
	token, _ := signup(t, h, "tester", "test")

	rec := doJSON(t, h, http.MethodPost, "/workfiles/5/reports", token,
		map[string]interface{}{"report": map[string]interface{}{"rev": 1}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeMap(t, rec)["success"])

	rec = doJSON(t, h, http.MethodPost, "/workfiles/5/reports", token,
		map[string]interface{}{"report": map[string]interface{}{"rev": 2}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/workfiles/5/reports", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reports []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	require.Len(t, reports, 1)
	doc, _ := reports[0]["report"].(map[string]interface{})
	require.EqualValues(t, 2, doc["rev"])
}

func TestCacheStatusAdvancesOnMutation(t *testing.T) {
	_, h := newTestServer(t)
	token, _ := signup(t, h, "tester", "test")

	// signup itself was a POST, so the marker is already set
	rec := doJSON(t, h, http.MethodGet, "/cache/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, decodeMap(t, rec)["lastUpdateTime"])
}
