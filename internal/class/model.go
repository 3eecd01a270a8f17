package class

import "time"

// ClassType is the closed set of class kinds the studio offers.
type ClassType string

const (
	TypeYoga  ClassType = "YOGA"
	TypeZumba ClassType = "ZUMBA"
	TypeHIIT  ClassType = "HIIT"
)

// Valid reports whether t is one of the known class types. Matching is
// exact; lowercase or padded values are rejected.
func (t ClassType) Valid() bool {
	switch t {
	case TypeYoga, TypeZumba, TypeHIIT:
		return true
	}
	return false
}

type FitnessClass struct {
	ID             int       `db:"id" json:"id"`
	ClassName      ClassType `db:"class_name" json:"class_name"`
	InstructorID   int       `db:"instructor_id" json:"instructor_id"`
	AvailableSlots int       `db:"available_slots" json:"available_slots"`
	ScheduledAt    time.Time `db:"scheduled_at" json:"scheduled_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type ClassWithInstructor struct {
	FitnessClass
	InstructorName string `db:"instructor_name" json:"instructor_name"`
}

type CreateClassRequest struct {
	ClassName      string `json:"class_name" binding:"required"`
	InstructorID   int    `json:"instructor_id" binding:"required"`
	AvailableSlots int    `json:"available_slots" binding:"required"`
	ScheduledAt    string `json:"scheduled_at" binding:"required"`
}
