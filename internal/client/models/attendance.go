package models

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ZeroCoordinates is submitted when the device location is unavailable, so
// that attendance marking never blocks on location.
var ZeroCoordinates = Coordinates{}

// AttendanceRecord is one check-in/check-out pair. CheckOutTime is nil while
// the user is still checked in.
type AttendanceRecord struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	Username         string     `json:"username"`
	CheckInTime      Timestamp  `json:"check_in_time"`
	CheckOutTime     *Timestamp `json:"check_out_time"`
	TirednessScore   float64    `json:"tiredness_score"`
	CheckInImageURL  *string    `json:"s3_image_url_check_in"`
	CheckOutImageURL *string    `json:"s3_image_url_check_out"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	IsCheckedIn      bool       `json:"is_checked_in"`
	CreatedAt        Timestamp  `json:"created_at"`
}

// Location returns the record's coordinates when both halves are present.
func (r AttendanceRecord) Location() (Coordinates, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}, true
}

// Level buckets the record's tiredness score.
func (r AttendanceRecord) Level() TirednessLevel {
	return LevelOf(r.TirednessScore)
}

// Pagination is the paging block of GET /attendance/records.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// RecordsPage is the envelope of GET /attendance/records.
type RecordsPage struct {
	Records    []AttendanceRecord `json:"records"`
	Pagination Pagination         `json:"pagination"`
}

// Normalize replaces an absent records list with an empty one.
func (p *RecordsPage) Normalize() {
	if p.Records == nil {
		p.Records = []AttendanceRecord{}
	}
}
