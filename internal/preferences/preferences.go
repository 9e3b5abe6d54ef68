// Package preferences stores per-user app settings.
package preferences

import "time"

// Supported unit systems.
const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

type UserPreferences struct {
	UserID               string    `json:"userId"`
	Timezone             string    `json:"timezone"`
	WeekStartsMonday     bool      `json:"weekStartsMonday"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	UnitSystem           string    `json:"unitSystem"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// DefaultPreferences is what a user gets before ever saving anything.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:               userID,
		Timezone:             "UTC",
		WeekStartsMonday:     true,
		NotificationsEnabled: true,
		UnitSystem:           UnitMetric,
	}
}

// Normalize fills the empty fields with their defaults. Unknown unit
// systems are reported, not silently replaced.
func (p *UserPreferences) Normalize() (ok bool) {
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	if p.UnitSystem == "" {
		p.UnitSystem = UnitMetric
	}
	return p.UnitSystem == UnitMetric || p.UnitSystem == UnitImperial
}
