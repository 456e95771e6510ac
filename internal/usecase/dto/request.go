package dto

// DateTimeLayout is the accepted wire format for timestamps. Fractional
// seconds are accepted when parsing.
const DateTimeLayout = "2006-01-02T15:04:05Z07:00"

// Coordinates is a latitude/longitude pair in a request body. Pointers
// let "required" distinguish a missing value from 0.
type Coordinates struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// PageQuery is the common page/limit query pair.
type PageQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize applies the default limit and page 1 to unset fields.
func (q *PageQuery) Normalize(defaultLimit int) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
}
