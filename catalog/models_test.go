package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCourseID(t *testing.T) {
	assert.Equal(t, CourseID("CS 1331"), MakeCourseID("CS", "1331"))
}

func TestPrimaryInstructor(t *testing.T) {
	tests := []struct {
		name        string
		instructors []string
		want        string
	}{
		{"single", []string{"Mary Hudachek-Buswell (P)"}, "Mary Hudachek-Buswell"},
		{"marker not first", []string{"John Stasko", "Mary Hudachek-Buswell (P)"}, "Mary Hudachek-Buswell"},
		{"no marker falls back to first listed", []string{"John Stasko", "Mary Hudachek-Buswell"}, "John Stasko"},
		{"unmarked single", []string{"John Stasko"}, "John Stasko"},
		{"empty", nil, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, PrimaryInstructor(test.instructors))
		})
	}
}

func TestSectionLabelsSorted(t *testing.T) {
	course := &Course{Sections: map[string]*Section{
		"C": {}, "A": {}, "B2": {}, "B1": {},
	}}
	assert.Equal(t, []string{"A", "B1", "B2", "C"}, course.SectionLabels())
}

func TestCourseIDsSorted(t *testing.T) {
	term := &Term{Courses: map[CourseID]*Course{
		"MATH 1552": {}, "CS 1331": {}, "CS 1301": {},
	}}
	assert.Equal(t, []CourseID{"CS 1301", "CS 1331", "MATH 1552"}, term.CourseIDs())
}
