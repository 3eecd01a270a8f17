package instructor

import "time"

type Instructor struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"instructor_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateInstructorRequest struct {
	Name string `json:"instructor_name" binding:"required"`
}
