package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transitlab/busplan/app"
	"github.com/transitlab/busplan/config"
	"github.com/transitlab/busplan/core/model"
	"github.com/transitlab/busplan/core/timetable"
	"github.com/transitlab/busplan/infra/logger"
	"github.com/transitlab/busplan/pkg/export"
	"github.com/transitlab/busplan/planio"
)

type handler struct {
	cfg      *config.Config
	pipeline *app.Pipeline
	log      logger.Logger
}

func newHandler(cfg *config.Config, pipeline *app.Pipeline, log logger.Logger) *handler {
	return &handler{cfg: cfg, pipeline: pipeline, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

type checkResponse struct {
	Report              any                  `json:"report"`
	Messages            []string             `json:"messages"`
	Diagnostics         []model.Diagnostic   `json:"diagnostics,omitempty"`
	Overlaps            any                  `json:"overlaps,omitempty"`
	TimetableMismatches []timetable.Mismatch `json:"timetable_mismatches,omitempty"`
	Plan                []model.Event        `json:"plan"`
}

// check runs the read-only pipeline on an uploaded plan. The plan is a
// multipart "plan" file or the raw request body as CSV; an optional
// "timetable" file enables the departure comparison.
func (h *handler) check(c *gin.Context) {
	events, diags, departures, ok := h.readUpload(c)
	if !ok {
		return
	}

	res := h.pipeline.Check(events, diags)

	var mismatches []timetable.Mismatch
	if departures != nil {
		mismatches = timetable.Compare(res.Groups.Flatten(), departures)
	}

	c.JSON(http.StatusOK, checkResponse{
		Report:              res.Report,
		Messages:            res.Report.Messages(),
		Diagnostics:         res.Diagnostics,
		Overlaps:            res.Overlaps,
		TimetableMismatches: mismatches,
		Plan:                export.DisplayOrder(res.Groups),
	})
}

type repairResponse struct {
	Report      any                `json:"report"`
	Messages    []string           `json:"messages"`
	Diagnostics []model.Diagnostic `json:"diagnostics,omitempty"`
	Outcome     any                `json:"outcome"`
	Verified    any                `json:"verified"`
	Plan        []model.Event      `json:"plan"`
}

// repair patches the uploaded plan. With ?format=csv the repaired
// table is returned in the tabular schema instead of JSON.
func (h *handler) repair(c *gin.Context) {
	events, diags, _, ok := h.readUpload(c)
	if !ok {
		return
	}

	res := h.pipeline.Repair(events, diags)

	if strings.EqualFold(c.Query("format"), "csv") {
		var buf bytes.Buffer
		if err := export.WritePlanCSV(&buf, res.Repaired.Flatten(), h.cfg.Timeline); err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="busplan_repaired.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, repairResponse{
		Report:      res.Report,
		Messages:    res.Report.Messages(),
		Diagnostics: res.Diagnostics,
		Outcome:     res.Outcome,
		Verified:    res.Verified,
		Plan:        export.DisplayOrder(res.Repaired),
	})
}

// readUpload parses the plan (and optional timetable) out of the
// request. On failure it writes the error response and returns ok=false.
func (h *handler) readUpload(c *gin.Context) (events []model.Event, diags []model.Diagnostic, departures []int, ok bool) {
	var planReader io.Reader

	if file, err := c.FormFile("plan"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("open plan upload: %v", err)})
			return nil, nil, nil, false
		}
		defer f.Close()
		planReader = f

		if tt, err := c.FormFile("timetable"); err == nil {
			departures, ok = h.readTimetable(c, tt)
			if !ok {
				return nil, nil, nil, false
			}
		}
	} else {
		planReader = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Server.MaxUploadBytes)
	}

	events, diags, err := planio.ReadPlan(planReader)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, nil, nil, false
	}
	return events, diags, departures, true
}

func (h *handler) readTimetable(c *gin.Context, file *multipart.FileHeader) ([]int, bool) {
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("open timetable upload: %v", err)})
		return nil, false
	}
	defer f.Close()
	departures, _, err := planio.ReadTimetable(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return departures, true
}
