package domain

import "time"

// HealthRecord represents one day of tracked health metrics
type HealthRecord struct {
	Date       string  `json:"date"`
	WeightKG   float64 `json:"weight_kg,omitempty"`
	Steps      int     `json:"steps,omitempty"`
	SleepHours float64 `json:"sleep_hours,omitempty"`
	HeartRate  int     `json:"heart_rate,omitempty"`
	WaterML    int     `json:"water_ml,omitempty"`
	Calories   int     `json:"calories,omitempty"`
}

// ActivityLogEntry represents one entry of the user's activity log
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
