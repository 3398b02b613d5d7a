package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitplan/internal/live"
	"pitplan/internal/models"
	"pitplan/internal/monitoring"
	"pitplan/internal/planner"
)

// Precondition violations surfaced to the caller as conflicts. The planning
// engine itself never guards these.
var (
	errNotStarted = errors.New("cook has not been started")
	errNoTarget   = errors.New("cook has no target temperature")
	errEmptySpan  = errors.New("plan has a zero expected span")
)

// CookAPI represents the main API handler for cook planning and tracking
type CookAPI struct {
	Router  *gin.Engine
	Store   Store
	Monitor *monitoring.Monitor
	Metrics *monitoring.Collector
	Hub     *live.Hub
	Advisor Advisor
}

// Store represents the persistence interface for cooks and readings
type Store interface {
	GetCook(ctx context.Context, id string) (*models.Cook, error)
	SaveCook(ctx context.Context, cook *models.Cook) error
	ListCooks(ctx context.Context) ([]models.Cook, error)
	DeleteCook(ctx context.Context, id string) error
	SaveReading(ctx context.Context, reading *models.TemperatureReading) error
	LatestReading(ctx context.Context, cookID string) (*models.TemperatureReading, error)
	ListReadings(ctx context.Context, cookID string) ([]models.TemperatureReading, error)
}

// Advisor answers free-form questions about a planned cook
type Advisor interface {
	Advise(ctx context.Context, cook *models.Cook, plan *planner.CookPlan, question string) (string, error)
}

// NewCookAPI creates a new cook API instance. authSecret enables the JWT
// middleware when non-empty; advisor may be nil when no LLM is configured.
func NewCookAPI(store Store, monitor *monitoring.Monitor, metrics *monitoring.Collector, hub *live.Hub, advisor Advisor, authSecret string) *CookAPI {
	api := &CookAPI{
		Router:  gin.Default(),
		Store:   store,
		Monitor: monitor,
		Metrics: metrics,
		Hub:     hub,
		Advisor: advisor,
	}

	api.setupRoutes(authSecret)
	return api
}

// setupRoutes configures all API endpoints
func (a *CookAPI) setupRoutes(authSecret string) {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "pitplan API is running"})
	})

	v1 := a.Router.Group("/api/v1")
	if authSecret != "" {
		v1.Use(AuthMiddleware(authSecret))
	}
	{
		// Plan preview without persistence
		v1.POST("/plans/preview", a.PreviewPlan)

		// Cook management
		v1.POST("/cooks", a.CreateCook)
		v1.GET("/cooks", a.ListCooks)
		v1.GET("/cooks/:id", a.GetCook)
		v1.PUT("/cooks/:id", a.UpdateCook)
		v1.DELETE("/cooks/:id", a.DeleteCook)
		v1.POST("/cooks/:id/start", a.StartCook)

		// Live tracking
		v1.POST("/cooks/:id/readings", a.AddReading)
		v1.GET("/cooks/:id/readings", a.ListReadings)
		v1.GET("/cooks/:id/prediction", a.GetPrediction)
		v1.GET("/cooks/:id/live", a.Hub.HandleWebSocket)

		// Pitmaster assistant
		v1.POST("/cooks/:id/advice", a.GetAdvice)
	}
}

// cookRequest carries the planning parameters for creates, updates and
// previews
type cookRequest struct {
	Name         string    `json:"name"`
	MeatCut      string    `json:"meat_cut"`
	WeightLb     float64   `json:"weight_lb"`
	SmokerType   string    `json:"smoker_type"`
	SmokerTempF  float64   `json:"smoker_temp_f"`
	WrapMethod   string    `json:"wrap_method"`
	ServeTime    time.Time `json:"serve_time"`
	AmbientTempF *float64  `json:"ambient_temp_f,omitempty"`
	AltitudeFt   *float64  `json:"altitude_ft,omitempty"`
	HumidityPct  *float64  `json:"humidity_pct,omitempty"`
	TargetTempF  float64   `json:"target_temp_f,omitempty"`
}

func (r *cookRequest) toCook() *models.Cook {
	wrap := r.WrapMethod
	if wrap == "" {
		wrap = string(planner.WrapNone)
	}
	target := r.TargetTempF
	if target == 0 {
		target = planner.DefaultTargetTemp(planner.MeatCut(r.MeatCut))
	}
	return &models.Cook{
		Name:         r.Name,
		MeatCut:      r.MeatCut,
		WeightLb:     r.WeightLb,
		SmokerType:   r.SmokerType,
		SmokerTempF:  r.SmokerTempF,
		WrapMethod:   wrap,
		ServeTime:    r.ServeTime,
		AmbientTempF: r.AmbientTempF,
		AltitudeFt:   r.AltitudeFt,
		HumidityPct:  r.HumidityPct,
		TargetTempF:  target,
	}
}

// PreviewPlan generates a plan for the given parameters without saving
func (a *CookAPI) PreviewPlan(c *gin.Context) {
	var req cookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cook := req.toCook()
	if err := models.ValidateCook(cook); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := planner.GeneratePlan(cook.PlanInput())
	a.observePlan(cook, plan)

	c.JSON(http.StatusOK, plan)
}

// CreateCook validates parameters, generates the plan and persists the cook
func (a *CookAPI) CreateCook(c *gin.Context) {
	var req cookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cook := req.toCook()
	if err := models.ValidateCook(cook); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cook.CookID = uuid.New().String()
	cook.Status = string(models.CookStatusPlanned)

	plan := planner.GeneratePlan(cook.PlanInput())
	if err := cook.SetPlan(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	a.observePlan(cook, plan)

	if err := a.Store.SaveCook(c.Request.Context(), cook); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cook)
}

// ListCooks returns all cooks
func (a *CookAPI) ListCooks(c *gin.Context) {
	cooks, err := a.Store.ListCooks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cooks)
}

// GetCook returns one cook with its decoded plan
func (a *CookAPI) GetCook(c *gin.Context) {
	cook, err := a.Store.GetCook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cook not found"})
		return
	}
	cook.GetPlan() // decode for the response; a missing plan is not fatal here

	c.JSON(http.StatusOK, cook)
}

// UpdateCook replaces the planning parameters and regenerates the plan.
// Plans are never edited in place: a changed input produces a whole new plan.
func (a *CookAPI) UpdateCook(c *gin.Context) {
	cook, err := a.Store.GetCook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cook not found"})
		return
	}

	var req cookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := req.toCook()
	if err := models.ValidateCook(updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cook.Name = updated.Name
	cook.MeatCut = updated.MeatCut
	cook.WeightLb = updated.WeightLb
	cook.SmokerType = updated.SmokerType
	cook.SmokerTempF = updated.SmokerTempF
	cook.WrapMethod = updated.WrapMethod
	cook.ServeTime = updated.ServeTime
	cook.AmbientTempF = updated.AmbientTempF
	cook.AltitudeFt = updated.AltitudeFt
	cook.HumidityPct = updated.HumidityPct
	cook.TargetTempF = updated.TargetTempF

	plan := planner.GeneratePlan(cook.PlanInput())
	if err := cook.SetPlan(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	a.observePlan(cook, plan)

	if err := a.Store.SaveCook(c.Request.Context(), cook); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cook)
}

// DeleteCook removes a cook and its readings
func (a *CookAPI) DeleteCook(c *gin.Context) {
	if err := a.Store.DeleteCook(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cook deleted successfully"})
}

// StartCook marks the cook as underway; elapsed time for predictions is
// measured from this moment
func (a *CookAPI) StartCook(c *gin.Context) {
	cook, err := a.Store.GetCook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cook not found"})
		return
	}

	now := time.Now().UTC()
	cook.StartedAt = &now
	cook.Status = string(models.CookStatusActive)

	if err := a.Store.SaveCook(c.Request.Context(), cook); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cook)
}

// readingRequest is a reported probe reading
type readingRequest struct {
	InternalTempF float64    `json:"internal_temp_f"`
	PitTempF      float64    `json:"pit_temp_f,omitempty"`
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
}

// AddReading persists a temperature reading, refreshes the prediction and
// broadcasts the result to live watchers
func (a *CookAPI) AddReading(c *gin.Context) {
	cook, err := a.Store.GetCook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cook not found"})
		return
	}

	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	reading := &models.TemperatureReading{
		CookID:        cook.CookID,
		InternalTempF: req.InternalTempF,
		PitTempF:      req.PitTempF,
		RecordedAt:    recordedAt,
	}
	if err := models.ValidateReading(reading); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := a.predictFor(cook, reading.InternalTempF, recordedAt)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := a.Store.SaveReading(c.Request.Context(), reading); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	a.Hub.Broadcast(live.Update{
		CookID:        cook.CookID,
		InternalTempF: reading.InternalTempF,
		Prediction:    *update,
		RecordedAt:    recordedAt,
	})

	c.JSON(http.StatusCreated, update)
}

// ListReadings returns the readings for a cook in chronological order
func (a *CookAPI) ListReadings(c *gin.Context) {
	readings, err := a.Store.ListReadings(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, readings)
}

// GetPrediction recomputes the prediction from the latest stored reading
func (a *CookAPI) GetPrediction(c *gin.Context) {
	cook, err := a.Store.GetCook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cook not found"})
		return
	}

	reading, err := a.Store.LatestReading(c.Request.Context(), cook.CookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reading == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No readings recorded for this cook"})
		return
	}

	update, err := a.predictFor(cook, reading.InternalTempF, reading.RecordedAt)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, update)
}

// adviceRequest is a free-form question for the pitmaster assistant
type adviceRequest struct {
	Question string `json:"question"`
}

// GetAdvice asks the LLM assistant about the cook and its plan
func (a *CookAPI) GetAdvice(c *gin.Context) {
	if a.Advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	cook, err := a.Store.GetCook(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cook not found"})
		return
	}

	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := cook.GetPlan()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	answer, err := a.Advisor.Advise(c.Request.Context(), cook, plan, req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Private helper methods

// predictFor enforces the engine preconditions (started cook, non-zero
// target, non-zero expected span) before invoking the pure updater
func (a *CookAPI) predictFor(cook *models.Cook, internalTempF float64, at time.Time) (*planner.PredictionUpdate, error) {
	plan, err := cook.GetPlan()
	if err != nil {
		return nil, err
	}
	if cook.StartedAt == nil {
		return nil, errNotStarted
	}
	if cook.TargetTempF <= 0 {
		return nil, errNoTarget
	}
	if !plan.ConfidenceRange.Latest.After(plan.RecommendedStartTime) {
		return nil, errEmptySpan
	}

	update := planner.UpdatePrediction(*plan, internalTempF, cook.ElapsedMinutes(at), cook.TargetTempF)

	a.Monitor.RecordPrediction(cook.CookID, update)
	a.Metrics.ObservePrediction(*plan, update)

	return &update, nil
}

func (a *CookAPI) observePlan(cook *models.Cook, plan planner.CookPlan) {
	a.Monitor.RecordPlanGenerated(cook.MeatCut, plan)
	a.Metrics.ObservePlan(cook.MeatCut, cook.SmokerType, plan)
}
