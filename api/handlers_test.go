package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitlab/busplan/app"
	"github.com/transitlab/busplan/config"
	"github.com/transitlab/busplan/infra/logger"
)

const feasiblePlan = "bus,start time,end time,activity,start location,end location,energy consumption\n" +
	"1,06:00:00,07:00:00,service trip,EHVBST,EHVAPT,30\n" +
	"1,07:30:00,08:30:00,service trip,EHVAPT,EHVBST,25\n"

const infeasiblePlan = "bus,start time,end time,activity,start location,end location,energy consumption\n" +
	"1,06:00:00,07:00:00,service trip,EHVBST,EHVAPT,150\n" +
	"1,09:00:00,10:00:00,service trip,EHVAPT,EHVBST,100\n"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	pipeline := app.New(cfg, logger.NopLogger{}, nil)
	return NewRouter(cfg, pipeline, logger.NopLogger{})
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	testRouter(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCheckRawBody(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", strings.NewReader(feasiblePlan))
	req.Header.Set("Content-Type", "text/csv")
	testRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Report struct {
			RunID string `json:"run_id"`
			Fleet struct {
				Infeasible   int `json:"infeasible"`
				VehiclesUsed int `json:"vehicles_used"`
			} `json:"fleet"`
		} `json:"report"`
		Messages []string `json:"messages"`
		Plan     []any    `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Report.RunID)
	assert.Equal(t, 0, resp.Report.Fleet.Infeasible)
	assert.Equal(t, 1, resp.Report.Fleet.VehiclesUsed)
	assert.NotEmpty(t, resp.Messages)
	// Gap filling makes the returned plan longer than the upload.
	assert.Len(t, resp.Plan, 3)
}

func TestCheckMultipartWithTimetable(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	plan, err := mw.CreateFormFile("plan", "plan.csv")
	require.NoError(t, err)
	_, err = plan.Write([]byte(feasiblePlan))
	require.NoError(t, err)
	tt, err := mw.CreateFormFile("timetable", "timetable.csv")
	require.NoError(t, err)
	_, err = tt.Write([]byte("line,departure_time\n400,06:00\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	testRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Mismatches []struct {
			StartClock string `json:"start_time"`
		} `json:"timetable_mismatches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// The 07:30 departure is not in the published timetable.
	require.Len(t, resp.Mismatches, 1)
	assert.Equal(t, "07:30:00", resp.Mismatches[0].StartClock)
}

func TestCheckRejectsBadSchema(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", strings.NewReader("foo,bar\n1,2\n"))
	testRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "missing required columns")
}

func TestRepairReturnsPatchedPlan(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/repair", strings.NewReader(infeasiblePlan))
	testRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Outcome struct {
			Inserted     int `json:"inserted"`
			Unrepairable int `json:"unrepairable"`
		} `json:"outcome"`
		Verified struct {
			Infeasible int `json:"infeasible"`
		} `json:"verified"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Outcome.Inserted)
	assert.Equal(t, 0, resp.Outcome.Unrepairable)
	assert.Equal(t, 0, resp.Verified.Infeasible)
}

func TestRepairCSVFormat(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/repair?format=csv", strings.NewReader(infeasiblePlan))
	testRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "busplan_repaired.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "bus,activity,line"))
	assert.Contains(t, w.Body.String(), "charging")
}

func TestCORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/check", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	testRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
