package models

// OWMForecastResponse represents the OpenWeather 5-day/3-hour forecast JSON.
type OWMForecastResponse struct {
	List []OWMForecastSlot `json:"list"`
	City OWMCity           `json:"city"`
}

// OWMForecastSlot is one 3-hour forecast entry.
type OWMForecastSlot struct {
	Dt     int64     `json:"dt"` // unix seconds, UTC
	Clouds OWMClouds `json:"clouds"`
	Rain   OWMRain   `json:"rain"`
}

// OWMClouds carries the cloud cover percentage.
type OWMClouds struct {
	All float64 `json:"all"`
}

// OWMRain carries the 3-hour rain accumulation. Absent in dry slots, in
// which case the accumulation defaults to zero.
type OWMRain struct {
	ThreeHour float64 `json:"3h"`
}

// OWMCity identifies the forecast location.
type OWMCity struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}
