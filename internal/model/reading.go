package model

import "time"

// Reading is one time-stamped set of indoor air sensor values for a user.
// Units: Temperature °C, Humidity %RH, CO2 ppm, PM25/PM10 µg/m³, TVOC ppb.
type Reading struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	CO2         float64   `json:"co2"`
	PM25        float64   `json:"pm25"`
	PM10        float64   `json:"pm10"`
	TVOC        float64   `json:"tvoc"`
}
