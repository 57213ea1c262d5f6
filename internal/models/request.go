package models

// ReviewRequest is an adjustment request waiting for an administrator.
type ReviewRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Time      string    `json:"time"` // HH:MM format
	Type      PunchType `json:"type"`
	Note      string    `json:"note"`
	ApplyTime string    `json:"applyTime"`
}

type PunchRequest struct {
	Type PunchType `validate:"required,oneof=clock-in clock-out"`
	Lat  *float64  `validate:"omitempty,latitude"`
	Lng  *float64  `validate:"omitempty,longitude"`
	Note string    `validate:"max=200"`
}

type AdjustmentRequest struct {
	Date string    `validate:"required,datetime=2006-01-02"`
	Time string    `validate:"required,datetime=15:04"`
	Type PunchType `validate:"required,oneof=clock-in clock-out"`
	Note string    `validate:"required,max=200"`
}

// Location is an allowed punch site.
type Location struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Lat    float64 `json:"lat" validate:"latitude"`
	Lng    float64 `json:"lng" validate:"longitude"`
	Radius int     `json:"radius" validate:"gte=0"`
}
