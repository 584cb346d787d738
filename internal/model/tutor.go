package model

// Tutor is a teacher offering lessons. Stored columns first_name, last_name and
// description are exposed as name, surname and bio.
type Tutor struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Bio     string  `json:"bio"`
	Rate    float64 `json:"rate"`
}

// TutorRequest is the payload for creating or replacing a tutor.
type TutorRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Surname string  `json:"surname" binding:"required,max=100"`
	Bio     string  `json:"bio"`
	Rate    float64 `json:"rate" binding:"gte=0,lte=99999999.99"`
}

// Availability is a recurring weekly window in which a tutor teaches.
// DayOfWeek runs from 0 (Sunday) to 6 (Saturday).
type Availability struct {
	ID        int    `json:"id"`
	TutorID   int    `json:"tutor_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityRequest is the payload for adding a weekly window.
type AvailabilityRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}
