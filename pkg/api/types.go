package api

import "github.com/ssargent/mapcode/pkg/storage"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port int
	Bind string
	// APIKey guards /api/v1. An empty key disables authentication.
	APIKey string
	// BatchWorkers bounds the goroutines of one batch job.
	BatchWorkers int
	// BatchMaxItems bounds the points of one batch request.
	BatchMaxItems int
}

// HealthResponse reports liveness and the loaded dataset.
type HealthResponse struct {
	Status      string `json:"status"`
	Territories int    `json:"territories"`
	Records     int    `json:"records"`
}

// Mapcode is one code of an encode.
type Mapcode struct {
	Territory string `json:"territory"`
	Code      string `json:"code"`
	// Full is the code as written, with territory unless international.
	Full string `json:"full"`
	// Alphabet is Code in the requested script.
	Alphabet string `json:"alphabet,omitempty"`
}

// EncodeResponse lists the codes of a coordinate.
type EncodeResponse struct {
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	Precision      int       `json:"precision"`
	MaxErrorMeters float64   `json:"max_error_meters"`
	Mapcodes       []Mapcode `json:"mapcodes"`
}

// DecodeResponse is the coordinate of a mapcode.
type DecodeResponse struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Territory string  `json:"territory"`
	Code      string  `json:"code"`
}

// ParseResponse reports the format check of a mapcode.
type ParseResponse struct {
	Valid bool `json:"valid"`
	// Incomplete is set when the input could still become a valid code.
	Incomplete bool   `json:"incomplete,omitempty"`
	Error      string `json:"error,omitempty"`
	Territory  string `json:"territory,omitempty"`
	Mapcode    string `json:"mapcode,omitempty"`
	Extension  string `json:"extension,omitempty"`
}

// TerritoryResponse describes a resolved territory.
type TerritoryResponse struct {
	ID              int      `json:"id"`
	Code            string   `json:"code"`
	IsoName         string   `json:"iso_name"`
	ShortName       string   `json:"short_name"`
	Name            string   `json:"name,omitempty"`
	Aliases         []string `json:"aliases,omitempty"`
	Parent          string   `json:"parent,omitempty"`
	HasSubdivisions bool     `json:"has_subdivisions"`
	FirstRecord     int      `json:"first_record"`
	LastRecord      int      `json:"last_record"`
}

// BordersResponse answers whether a coordinate lies near several borders.
type BordersResponse struct {
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
	Territory             string  `json:"territory"`
	MultipleBordersNearby bool    `json:"multiple_borders_nearby"`
}

// BatchRequest is the body of POST /batch.
type BatchRequest struct {
	Points    []storage.Point `json:"points"`
	Territory string          `json:"territory,omitempty"`
	Precision int             `json:"precision,omitempty"`
	Shortest  bool            `json:"shortest,omitempty"`
}

// BatchAccepted is returned for a started batch job.
type BatchAccepted struct {
	ID     string         `json:"id"`
	Status storage.Status `json:"status"`
}
