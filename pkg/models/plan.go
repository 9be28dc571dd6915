package models

type Plan struct {
	ID          SubscriptionTier `json:"id"`
	Name        string           `json:"name"`
	Price       int              `json:"price"`
	Period      string           `json:"period,omitempty"`
	Popular     bool             `json:"popular,omitempty"`
	Features    []string         `json:"features"`
	Limitations []string         `json:"limitations,omitempty"`
	// DriverVisibility caps how many interested drivers an owner sees. 0 means no cap.
	DriverVisibility int `json:"driver_visibility"`
}
