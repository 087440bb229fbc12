package request_models

// Coordinates is the GPS fix reported by the device. Latitude, longitude
// and accuracy are pointers so that an absent field is distinguishable from
// a zero value; the decision engine rejects absent ones.
type Coordinates struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Accuracy  *float64 `json:"accuracy" binding:"required"`
	Altitude  *float64 `json:"altitude"`
	Heading   *float64 `json:"heading"`
	Speed     *float64 `json:"speed"`
}

type CheckinRequest struct {
	Coordinates Coordinates `json:"coordinates" binding:"required"`
}
