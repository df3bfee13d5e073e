package models

import "github.com/uptrace/bun"

// Course is a golf course.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	CourseID int    `bun:"course_id,pk,autoincrement" json:"courseID"`
	Name     string `bun:"name,notnull,unique" json:"name"`
}

// Par is one hole of a course/tee card: par and stroke index. Stroke
// indices are assumed to be a permutation of 1..18 within one tee.
type Par struct {
	bun.BaseModel `bun:"table:pars,alias:pa"`

	ID          int    `bun:"id,pk,autoincrement" json:"id"`
	CourseID    int    `bun:"course_id,notnull,unique:pars_no_dupes" json:"courseID"`
	Tee         string `bun:"tee,notnull,unique:pars_no_dupes" json:"tee"`
	HoleNumber  int    `bun:"hole_number,notnull,unique:pars_no_dupes" json:"holeNumber"`
	Par         int    `bun:"par,notnull" json:"par"`
	StrokeIndex int    `bun:"stroke_index,notnull" json:"strokeIndex"`
}
