package models

import "time"

// Incident is a read-only row of the external ingestion pipeline's dataset.
// This core never writes to it.
type Incident struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UUID        string    `json:"uuid" gorm:"uniqueIndex"`
	Type        string    `json:"type"`
	Subtype     *string   `json:"subtype,omitempty"`
	City        *string   `json:"city,omitempty"`
	Street      *string   `json:"street,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Priority    *int      `json:"priority,omitempty"`
	Status      string    `json:"status"`
	PubTime     time.Time `json:"pub_time" gorm:"column:pub_time;index"`
	Reliability *int      `json:"reliability,omitempty"`
	Confidence  *int      `json:"confidence,omitempty"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
}

func (Incident) TableName() string {
	return "waze_incidents"
}

// IncidentWithDistance annotates an incident with its geodesic distance in
// meters to the center of a proximity query.
type IncidentWithDistance struct {
	Incident
	Distance float64 `json:"distance"`
}

// IncidentSummary is the compact shape embedded in ticket reads.
type IncidentSummary struct {
	ID       int64   `json:"id"`
	UUID     string  `json:"uuid"`
	Type     string  `json:"type"`
	Category *string `json:"category,omitempty"`
	City     *string `json:"city,omitempty"`
	Street   *string `json:"street,omitempty"`
	Status   string  `json:"status"`
}

func (i *Incident) Summary() *IncidentSummary {
	return &IncidentSummary{
		ID:       i.ID,
		UUID:     i.UUID,
		Type:     i.Type,
		Category: i.Category,
		City:     i.City,
		Street:   i.Street,
		Status:   i.Status,
	}
}
