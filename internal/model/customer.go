package model

type Customer struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	RegionID    *int64 `json:"region_id,omitempty"`
}

type Region struct {
	ID      int64  `json:"id"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city,omitempty"`
}

type ExternalDiseaseRate struct {
	ID          int64   `json:"id"`
	RegionID    int64   `json:"region_id"`
	Year        int     `json:"year"`
	DiseaseCode string  `json:"disease_code"`
	RateValue   float64 `json:"rate_value"`
}
