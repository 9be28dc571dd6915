package models

import (
	"slices"
	"time"
)

type LoadStatus string

const (
	LoadActive     LoadStatus = "active"
	LoadInProgress LoadStatus = "in-progress"
	LoadCompleted  LoadStatus = "completed"
)

func (s LoadStatus) Valid() bool {
	switch s {
	case LoadActive, LoadInProgress, LoadCompleted:
		return true
	}
	return false
}

type Load struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	Distance          float64    `json:"distance"`
	Weight            float64    `json:"weight"`
	Payment           float64    `json:"payment"`
	PickupDate        time.Time  `json:"pickup_date"`
	DeliveryDate      time.Time  `json:"delivery_date"`
	CargoType         string     `json:"cargo_type"`
	Status            LoadStatus `json:"status"`
	OwnerID           string     `json:"owner_id"`
	OwnerName         string     `json:"owner_name"`
	InterestedDrivers []string   `json:"interested_drivers"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (l *Load) HasInterest(driverID string) bool {
	return slices.Contains(l.InterestedDrivers, driverID)
}

func (l *Load) Clone() *Load {
	if l == nil {
		return nil
	}
	c := *l
	c.InterestedDrivers = append([]string{}, l.InterestedDrivers...)
	return &c
}

// LoadInput is what an owner fills in when posting a load.
type LoadInput struct {
	Title       string    `json:"title"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Distance    float64   `json:"distance"`
	Weight      float64   `json:"weight"`
	Payment     float64   `json:"payment"`
	PickupDate  time.Time `json:"pickup_date"`
	CargoType   string    `json:"cargo_type"`
}
