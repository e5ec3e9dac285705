package models

// NOAAKpResponse represents one record of the NOAA SWPC planetary K-index
// JSON time series.
type NOAAKpResponse struct {
	TimeTag     string  `json:"time_tag"`
	KpIndex     float64 `json:"kp_index"`
	EstimatedKp float64 `json:"estimated_kp"`
	Source      string  `json:"source"`
}
