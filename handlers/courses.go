package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

// Courses returns all courses.
func (h *Handler) Courses(c echo.Context) error {
	var courses []models.Course
	err := h.db.NewSelect().Model(&courses).OrderExpr("c.name ASC").Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, courses)
}

// CreateCourse inserts a new course.
func (h *Handler) CreateCourse(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	course := &models.Course{Name: req.Name}
	if _, err := h.db.NewInsert().Model(course).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "course already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, course)
}

// CoursePars returns a course's par cards grouped by tee.
func (h *Handler) CoursePars(c echo.Context) error {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	var pars []models.Par
	err = h.db.NewSelect().Model(&pars).
		Where("course_id = ?", courseID).
		OrderExpr("tee ASC, hole_number ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	grouped := map[string][]models.Par{}
	for _, p := range pars {
		grouped[p.Tee] = append(grouped[p.Tee], p)
	}
	return c.JSON(http.StatusOK, grouped)
}

type parRow struct {
	HoleNumber  int `json:"holeNumber"`
	Par         int `json:"par"`
	StrokeIndex int `json:"strokeIndex"`
}

// SaveCoursePars replaces one tee's 18-hole card in a single transaction.
// A partial card is rejected outright: a tee either has all 18 holes or the
// recalculators treat it as missing.
func (h *Handler) SaveCoursePars(c echo.Context) error {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	tee := strings.TrimSpace(c.QueryParam("tee"))
	if tee == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing tee param")
	}

	var rows []parRow
	if err := c.Bind(&rows); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(rows) != scoring.Holes {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("expected %d holes, got %d", scoring.Holes, len(rows)))
	}
	seen := map[int]bool{}
	for _, r := range rows {
		if r.HoleNumber < 1 || r.HoleNumber > scoring.Holes || seen[r.HoleNumber] {
			return echo.NewHTTPError(http.StatusBadRequest, "hole numbers must cover 1-18 exactly once")
		}
		seen[r.HoleNumber] = true
		if r.Par < 3 || r.Par > 6 {
			return echo.NewHTTPError(http.StatusBadRequest, "par out of range")
		}
		if r.StrokeIndex < 1 || r.StrokeIndex > scoring.Holes {
			return echo.NewHTTPError(http.StatusBadRequest, "stroke index out of range")
		}
	}

	ctx := c.Request().Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, r := range rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pars (course_id, tee, hole_number, par, stroke_index)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (course_id, tee, hole_number)
			 DO UPDATE SET par = EXCLUDED.par, stroke_index = EXCLUDED.stroke_index`,
			courseID, tee, r.HoleNumber, r.Par, r.StrokeIndex,
		)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err = tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	return c.NoContent(http.StatusAccepted)
}
