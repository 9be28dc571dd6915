package models

type Driver struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Rating         float64  `json:"rating"`
	CompletedLoads int      `json:"completed_loads"`
	TruckType      string   `json:"truck_type"`
	Location       string   `json:"location"`
	Distance       float64  `json:"distance"`
	Phone          string   `json:"phone"`
	Verified       bool     `json:"verified"`
	ResponseTime   string   `json:"response_time"`
	AIMatchScore   *float64 `json:"ai_match_score,omitempty"`
}
