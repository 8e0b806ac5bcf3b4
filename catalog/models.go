package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// CourseID identifies a course as "SUBJECT NUMBER", e.g. "CS 1331".
type CourseID string

func MakeCourseID(subject, number string) CourseID {
	return CourseID(fmt.Sprintf("%v %v", subject, number))
}

type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeDMinus Grade = "D-"
	GradeF      Grade = "F"
)

type Meeting struct {
	Period   string
	Days     string
	Location string
}

type Section struct {
	CRN          string
	ScheduleType string
	Credits      int
	// Instructor display names as scraped; the instructor of record
	// carries a trailing "(P)" marker.
	Instructors []string
	Meetings    []Meeting
	// Nil until the attach step writes a compiled value. A non-nil
	// empty value means the course has no prerequisites.
	Prerequisites *Prerequisites
}

type Course struct {
	ID       CourseID
	Title    string
	Sections map[string]*Section
}

// SectionLabels returns the course's section labels in ascending order.
// Map iteration order is not deterministic, so anything that cares about
// a stable section order goes through this.
func (c *Course) SectionLabels() []string {
	labels := make([]string, 0, len(c.Sections))
	for label := range c.Sections {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

type Term struct {
	Code    string
	Name    string
	Courses map[CourseID]*Course
}

// CourseIDs returns the term's course identifiers in ascending order.
func (t *Term) CourseIDs() []CourseID {
	ids := make([]CourseID, 0, len(t.Courses))
	for id := range t.Courses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

const primaryMarker = "(P)"

// PrimaryInstructor selects the instructor of record from a section's
// instructor list: the name carrying the trailing "(P)" marker, with the
// marker stripped. When no name carries the marker the first listed
// instructor is used. Returns "" for an empty list.
func PrimaryInstructor(instructors []string) string {
	for _, name := range instructors {
		if trimmed, found := strings.CutSuffix(strings.TrimSpace(name), primaryMarker); found {
			return strings.TrimSpace(trimmed)
		}
	}
	if len(instructors) > 0 {
		return strings.TrimSpace(instructors[0])
	}
	return ""
}
