package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the pitplan server
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("PITPLAN_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false,
	}

	// If the server is not reachable, fall back to mock data so the TUI
	// stays usable for demos
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Cook represents a smoking session as returned by the API
type Cook struct {
	CookID      string    `json:"cook_id"`
	Name        string    `json:"name"`
	MeatCut     string    `json:"meat_cut"`
	WeightLb    float64   `json:"weight_lb"`
	SmokerType  string    `json:"smoker_type"`
	SmokerTempF float64   `json:"smoker_temp_f"`
	WrapMethod  string    `json:"wrap_method"`
	ServeTime   time.Time `json:"serve_time"`
	TargetTempF float64   `json:"target_temp_f"`
	Status      string    `json:"status"`
	Plan        *CookPlan `json:"plan,omitempty"`
}

// CookPlan is the phase schedule for a cook
type CookPlan struct {
	Phases              []Phase   `json:"phases"`
	PredictedFinishTime time.Time `json:"predicted_finish_time"`
	ConfidenceRange     struct {
		Earliest time.Time `json:"earliest"`
		Latest   time.Time `json:"latest"`
	} `json:"confidence_range"`
	ConfidenceScore      int       `json:"confidence_score"`
	RecommendedStartTime time.Time `json:"recommended_start_time"`
}

// Phase is one segment of the cook timeline
type Phase struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"duration_range"`
	Confidence string `json:"confidence"`
	Note       string `json:"note,omitempty"`
	Order      int    `json:"order"`
}

// Prediction is the live finish-time estimate for a running cook
type Prediction struct {
	UpdatedFinishTime  time.Time `json:"updated_finish_time"`
	AdjustedConfidence int       `json:"adjusted_confidence"`
	Status             string    `json:"status"`
}

// ListCooks fetches all cooks
func (c *ApiClient) ListCooks() ([]Cook, error) {
	if c.UseMock {
		return mockCooks(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/cooks")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list cooks failed with status code: %d", resp.StatusCode)
	}

	var cooks []Cook
	if err := json.NewDecoder(resp.Body).Decode(&cooks); err != nil {
		return nil, err
	}
	return cooks, nil
}

// GetCook fetches one cook with its plan
func (c *ApiClient) GetCook(id string) (*Cook, error) {
	if c.UseMock {
		cooks := mockCooks()
		return &cooks[0], nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/cooks/" + id)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get cook failed with status code: %d", resp.StatusCode)
	}

	var cook Cook
	if err := json.NewDecoder(resp.Body).Decode(&cook); err != nil {
		return nil, err
	}
	return &cook, nil
}

// GetPrediction fetches the latest prediction for a cook
func (c *ApiClient) GetPrediction(id string) (*Prediction, error) {
	if c.UseMock {
		return &Prediction{
			UpdatedFinishTime:  time.Now().Add(5 * time.Hour),
			AdjustedConfidence: 68,
			Status:             "on_track",
		}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/cooks/" + id + "/prediction")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get prediction failed with status code: %d", resp.StatusCode)
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// PreviewPlan requests a plan without creating a cook
func (c *ApiClient) PreviewPlan(params map[string]interface{}) (*CookPlan, error) {
	if c.UseMock {
		cooks := mockCooks()
		return cooks[0].Plan, nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/plans/preview", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plan preview failed with status code: %d", resp.StatusCode)
	}

	var plan CookPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// mockCooks returns demo data for offline use
func mockCooks() []Cook {
	serve := time.Now().Add(10 * time.Hour).Truncate(time.Minute)
	finish := serve.Add(-150 * time.Minute)
	start := serve.Add(-18 * time.Hour)

	plan := &CookPlan{
		PredictedFinishTime:  finish,
		ConfidenceScore:      75,
		RecommendedStartTime: start,
	}
	plan.ConfidenceRange.Earliest = finish.Add(-171 * time.Minute)
	plan.ConfidenceRange.Latest = finish.Add(171 * time.Minute)

	names := []string{"Prep & Trim", "Preheat Smoker", "Smoke Phase 1", "Stall Window", "Smoke Phase 2", "Rest"}
	cursor := start
	for i, name := range names {
		phase := Phase{Name: name, StartTime: cursor, Order: i, Confidence: "medium"}
		cursor = cursor.Add(3 * time.Hour)
		phase.EndTime = cursor
		phase.Duration.Min = 60
		phase.Duration.Max = 240
		plan.Phases = append(plan.Phases, phase)
	}

	return []Cook{
		{
			CookID:      "mock-brisket",
			Name:        "Weekend brisket",
			MeatCut:     "brisket",
			WeightLb:    12,
			SmokerType:  "pellet",
			SmokerTempF: 225,
			WrapMethod:  "none",
			ServeTime:   serve,
			TargetTempF: 203,
			Status:      "active",
			Plan:        plan,
		},
		{
			CookID:      "mock-ribs",
			Name:        "Baby backs",
			MeatCut:     "baby_back_ribs",
			WeightLb:    3,
			SmokerType:  "kamado",
			SmokerTempF: 250,
			WrapMethod:  "foil",
			ServeTime:   serve,
			TargetTempF: 195,
			Status:      "planned",
		},
	}
}
