package models

type Role string

const (
	RoleDriver Role = "driver"
	RoleOwner  Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleOwner
}

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPro     SubscriptionTier = "pro"
	TierPremium SubscriptionTier = "premium"
)

func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierPremium:
		return true
	}
	return false
}

type User struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Role           Role             `json:"role"`
	Subscription   SubscriptionTier `json:"subscription"`
	IsPremium      bool             `json:"is_premium"`
	Phone          string           `json:"phone"`
	Company        *string          `json:"company,omitempty"`
	Rating         float64          `json:"rating"`
	CompletedLoads int              `json:"completed_loads"`
	JoinedDate     string           `json:"joined_date"`
	Verified       bool             `json:"verified"`
	TruckTypes     []string         `json:"truck_types,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Company != nil {
		company := *u.Company
		c.Company = &company
	}
	if u.TruckTypes != nil {
		c.TruckTypes = append([]string(nil), u.TruckTypes...)
	}
	return &c
}

type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"is_authenticated"`
}
