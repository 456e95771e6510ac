package domain

import (
	"fmt"
	"strconv"
)

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Lat float64 `json:"latitude" db:"latitude"`
	Lon float64 `json:"longitude" db:"longitude"`
}

// Key is the unrounded "lat,lon" form used to address batch results.
func (c Coordinate) Key() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// RoundedKey groups coordinates that are equal to six decimal places.
func (c Coordinate) RoundedKey() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// Page is a 1-based offset pagination request.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}
