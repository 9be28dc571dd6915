// Package seed holds the demo data the board starts with: the demo accounts,
// the driver roster, the initial load postings, the loads revealed by an AI scan
// and the subscription catalog.
package seed

import (
	"time"

	"loadboard/pkg/models"
)

const (
	DemoDriverID = "drv-001"
	DemoOwnerID  = "own-001"
)

var TruckTypes = []string{
	"Refrigerated Truck",
	"Flatbed Truck",
	"Box Truck",
	"Tanker Truck",
	"Car Carrier",
	"Dump Truck",
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

// DemoUser returns a fresh copy of the demo account for role, or nil for an unknown role.
func DemoUser(role models.Role) *models.User {
	switch role {
	case models.RoleDriver:
		return &models.User{
			ID:             DemoDriverID,
			Name:           "Dachi Ghambashidze",
			Email:          "driver@onpoint.ge",
			Role:           models.RoleDriver,
			Subscription:   models.TierFree,
			Phone:          "+995 555 123 456",
			Rating:         4.8,
			CompletedLoads: 147,
			JoinedDate:     "March 2023",
			Verified:       true,
			TruckTypes:     []string{"Refrigerated Truck"},
		}
	case models.RoleOwner:
		return &models.User{
			ID:             DemoOwnerID,
			Name:           "Fresh Harvest Ltd.",
			Email:          "owner@onpoint.ge",
			Role:           models.RoleOwner,
			Subscription:   models.TierPremium,
			IsPremium:      true,
			Company:        strPtr("Fresh Harvest Ltd."),
			Phone:          "+995 555 789 012",
			Rating:         4.9,
			CompletedLoads: 89,
			JoinedDate:     "January 2023",
			Verified:       true,
		}
	}
	return nil
}

func Drivers() []models.Driver {
	return []models.Driver{
		{
			ID:             "drv-001",
			Name:           "Dachi Ghambashidze",
			Rating:         4.8,
			CompletedLoads: 147,
			TruckType:      "Refrigerated Truck",
			Location:       "Tbilisi",
			Distance:       5,
			Phone:          "+995 555 123 456",
			Verified:       true,
			ResponseTime:   "Within 2 hours",
		},
		{
			ID:             "drv-002",
			Name:           "Giorgi Beridze",
			Rating:         4.6,
			CompletedLoads: 89,
			TruckType:      "Flatbed Truck",
			Location:       "Batumi",
			Distance:       380,
			Phone:          "+995 555 234 567",
			Verified:       true,
			ResponseTime:   "Within 4 hours",
		},
		{
			ID:             "drv-003",
			Name:           "Nino Kharaishvili",
			Rating:         4.9,
			CompletedLoads: 203,
			TruckType:      "Box Truck",
			Location:       "Kutaisi",
			Distance:       235,
			Phone:          "+995 555 345 678",
			Verified:       true,
			ResponseTime:   "Within 1 hour",
		},
	}
}

func Loads() []models.Load {
	return []models.Load{
		{
			ID:                "load-001",
			Title:             "Fresh Produce - Tbilisi to Batumi",
			Origin:            "Tbilisi",
			Destination:       "Batumi",
			Distance:          380,
			Weight:            2500,
			Payment:           850,
			PickupDate:        at("2024-12-20T08:00:00"),
			DeliveryDate:      at("2024-12-20T16:00:00"),
			CargoType:         "Fresh Produce",
			Status:            models.LoadActive,
			OwnerID:           "own-001",
			OwnerName:         "Fresh Harvest Ltd.",
			InterestedDrivers: []string{"drv-001", "drv-003"},
			CreatedAt:         at("2024-12-15T10:00:00"),
		},
		{
			ID:                "load-002",
			Title:             "Construction Materials - Tbilisi to Kutaisi",
			Origin:            "Tbilisi",
			Destination:       "Kutaisi",
			Distance:          235,
			Weight:            5000,
			Payment:           650,
			PickupDate:        at("2024-12-21T07:00:00"),
			DeliveryDate:      at("2024-12-21T14:00:00"),
			CargoType:         "Construction Materials",
			Status:            models.LoadActive,
			OwnerID:           "own-001",
			OwnerName:         "Fresh Harvest Ltd.",
			InterestedDrivers: []string{"drv-002"},
			CreatedAt:         at("2024-12-15T11:00:00"),
		},
		{
			ID:                "load-003",
			Title:             "Electronics - Batumi to Tbilisi",
			Origin:            "Batumi",
			Destination:       "Tbilisi",
			Distance:          380,
			Weight:            1200,
			Payment:           780,
			PickupDate:        at("2024-12-22T09:00:00"),
			DeliveryDate:      at("2024-12-22T17:00:00"),
			CargoType:         "Electronics",
			Status:            models.LoadActive,
			OwnerID:           "own-002",
			OwnerName:         "Tech Distributors",
			InterestedDrivers: []string{},
			CreatedAt:         at("2024-12-15T12:00:00"),
		},
	}
}

// ScanLoads is what the mock AI scan "discovers". load-001 is already on the
// board, so a merge must skip it.
func ScanLoads() []models.Load {
	return []models.Load{
		Loads()[0],
		{
			ID:                "load-004",
			Title:             "Frozen Seafood - Batumi to Tbilisi",
			Origin:            "Batumi",
			Destination:       "Tbilisi",
			Distance:          380,
			Weight:            1800,
			Payment:           920,
			PickupDate:        at("2024-12-23T06:00:00"),
			DeliveryDate:      at("2024-12-23T14:00:00"),
			CargoType:         "Frozen Food",
			Status:            models.LoadActive,
			OwnerID:           "own-003",
			OwnerName:         "Black Sea Fisheries",
			InterestedDrivers: []string{},
			CreatedAt:         at("2024-12-16T09:00:00"),
		},
		{
			ID:                "load-005",
			Title:             "Wine Barrels - Telavi to Poti",
			Origin:            "Telavi",
			Destination:       "Poti",
			Distance:          390,
			Weight:            3200,
			Payment:           1050,
			PickupDate:        at("2024-12-24T07:30:00"),
			DeliveryDate:      at("2024-12-24T17:00:00"),
			CargoType:         "Beverages",
			Status:            models.LoadActive,
			OwnerID:           "own-004",
			OwnerName:         "Kakheti Wine Co.",
			InterestedDrivers: []string{},
			CreatedAt:         at("2024-12-16T10:30:00"),
		},
		{
			ID:                "load-006",
			Title:             "Furniture - Kutaisi to Rustavi",
			Origin:            "Kutaisi",
			Destination:       "Rustavi",
			Distance:          250,
			Weight:            2100,
			Payment:           560,
			PickupDate:        at("2024-12-26T10:00:00"),
			DeliveryDate:      at("2024-12-26T16:00:00"),
			CargoType:         "Furniture",
			Status:            models.LoadActive,
			OwnerID:           "own-001",
			OwnerName:         "Fresh Harvest Ltd.",
			InterestedDrivers: []string{"drv-003"},
			CreatedAt:         at("2024-12-16T12:00:00"),
		},
	}
}

func Plans() []models.Plan {
	return []models.Plan{
		{
			ID:    models.TierFree,
			Name:  "Free",
			Price: 0,
			Features: []string{
				"Basic load browsing",
				"Show interest in loads",
				"Basic filters",
				"Standard support",
			},
			Limitations: []string{
				"Limited to 4 visible interested drivers",
				"No premium route optimization",
				"No advanced analytics",
			},
			DriverVisibility: 4,
		},
		{
			ID:      models.TierPro,
			Name:    "Pro",
			Price:   10,
			Period:  "month",
			Popular: true,
			Features: []string{
				"All Free features",
				"See all interested drivers",
				"AI-powered route optimization",
				"Advanced filters & sorting",
				"Chat scan for important info",
				"Priority support",
				"Best route recommendations",
				"Fuel station finder",
			},
		},
		{
			ID:     models.TierPremium,
			Name:   "Premium",
			Price:  20,
			Period: "month",
			Features: []string{
				"All Pro features",
				"Real-time cargo tracking",
				"Advanced financial analytics",
				"Hotel recommendations",
				"Unlimited driver visibility",
				"24/7 premium support",
				"Custom reports",
				"API access",
			},
		},
	}
}

// Plan looks up the catalog entry for tier. Unknown tiers get the free plan.
func Plan(tier models.SubscriptionTier) models.Plan {
	plans := Plans()
	for _, p := range plans {
		if p.ID == tier {
			return p
		}
	}
	return plans[0]
}
