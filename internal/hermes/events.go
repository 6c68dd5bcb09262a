package hermes

import "time"

// SimulationRequestEvent asks the service to run a simulation.
type SimulationRequestEvent struct {
	RequestID     string             `json:"request_id,omitempty"`
	DamageTypeID  string             `json:"damage_type_id"`
	TechnologyIDs []string           `json:"technology_ids"`
	Constants     map[string]float64 `json:"constants,omitempty"`
	Iterations    int                `json:"iterations,omitempty"`
	Source        string             `json:"source,omitempty"`
}

type SimulationCompletedEvent struct {
	RunID              string     `json:"run_id"`
	RequestID          string     `json:"request_id,omitempty"`
	DamageTypeID       string     `json:"damage_type_id"`
	OptimalCombination []string   `json:"optimal_combination"`
	TotalProbability   float64    `json:"total_probability"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	Combinations       int        `json:"combinations"`
	DurationMs         int64      `json:"duration_ms"`
	Timestamp          time.Time  `json:"timestamp"`
}

type SimulationFailedEvent struct {
	RequestID    string    `json:"request_id,omitempty"`
	DamageTypeID string    `json:"damage_type_id"`
	Error        string    `json:"error"`
	Timestamp    time.Time `json:"timestamp"`
}

type SimulationDeletedEvent struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
}
