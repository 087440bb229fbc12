package response_models

type AttendanceResponse struct {
	ID            string   `json:"id"`
	Kind          string   `json:"kind"`
	Date          string   `json:"date"`
	ArrivalTime   string   `json:"arrival_time"`
	DepartureTime string   `json:"departure_time,omitempty"`
	Status        string   `json:"status"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Accuracy      float64  `json:"accuracy"`
	Distance      *float64 `json:"distance,omitempty"`
	OfficeID      string   `json:"office_id,omitempty"`
	MissionID     string   `json:"mission_id,omitempty"`
}
