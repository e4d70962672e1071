package models

// Requests for dashboard HTTP endpoints. Query field lists are comma separated ids;
// unknown ranges fall back to the default window.

type SeriesRequest struct {
	Range  string `query:"range" json:"range" default:"5Y" validate:"max=8"`
	Fields string `query:"fields" json:"fields" validate:"max=128"`
	Mode   string `query:"mode" json:"mode" default:"STANDARD" validate:"oneof=STANDARD PERCENTAGE"`
}

type CorrelationRequest struct {
	Range  string `query:"range" json:"range" default:"5Y" validate:"max=8"`
	Fields string `query:"fields" json:"fields" validate:"max=128"`
}

type InsightHTTPRequest struct {
	Range  string   `json:"range" default:"5Y" validate:"max=8"`
	Fields []string `json:"fields" validate:"max=16,dive,required"`
}
