// Package export reads and writes the normalized term dataset as JSON.
// Repeated strings (meeting periods, locations, schedule types) are
// interned into a caches block, with records holding indexes into it.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/banweb/crawler/catalog"
	"github.com/banweb/crawler/uniqueness"
)

type termJSON struct {
	Term    string                `json:"term"`
	Name    string                `json:"name,omitempty"`
	Courses map[string]courseJSON `json:"courses"`
	Caches  cachesJSON            `json:"caches"`
}

type cachesJSON struct {
	Periods       []string `json:"periods"`
	ScheduleTypes []string `json:"scheduleTypes"`
	Locations     []string `json:"locations"`
}

// A course is stored as [title, sections, tier].
type courseJSON struct {
	Title    string
	Sections map[string]sectionJSON
	Tier     int
}

// A section is stored as [crn, meetings, credits, scheduleTypeIndex,
// prerequisites, instructors]; prerequisites is null when nothing was
// ever attached.
type sectionJSON struct {
	CRN           string
	Meetings      []meetingJSON
	Credits       int
	ScheduleType  int
	Prerequisites *catalog.Prerequisites
	Instructors   []string
}

// A meeting is stored as [periodIndex, days, locationIndex].
type meetingJSON struct {
	Period   int
	Days     string
	Location int
}

func (c courseJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Title, c.Sections, c.Tier})
}

func (c *courseJSON) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, "course", &c.Title, &c.Sections, &c.Tier)
}

func (s sectionJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.CRN, s.Meetings, s.Credits, s.ScheduleType, s.Prerequisites, s.Instructors})
}

func (s *sectionJSON) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, "section", &s.CRN, &s.Meetings, &s.Credits, &s.ScheduleType, &s.Prerequisites, &s.Instructors)
}

func (m meetingJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.Period, m.Days, m.Location})
}

func (m *meetingJSON) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, "meeting", &m.Period, &m.Days, &m.Location)
}

func unmarshalTuple(data []byte, kind string, fields ...any) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	if len(elements) != len(fields) {
		return fmt.Errorf("%v record has %v elements, want %v", kind, len(elements), len(fields))
	}
	for i, field := range fields {
		if err := json.Unmarshal(elements[i], field); err != nil {
			return err
		}
	}
	return nil
}

type cache struct {
	values []string
	index  map[string]int
}

func (c *cache) intern(value string) int {
	if i, ok := c.index[value]; ok {
		return i
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.values = append(c.values, value)
	c.index[value] = len(c.values) - 1
	return len(c.values) - 1
}

func (c *cache) lookup(i int) (string, error) {
	if i < 0 || i >= len(c.values) {
		return "", fmt.Errorf("cache index %v out of range", i)
	}
	return c.values[i], nil
}

// WriteTerm writes the term dataset, with categorizer tiers, to path.
func WriteTerm(term *catalog.Term, tiers map[catalog.CourseID]uniqueness.Tier, path string) error {
	var periods, scheduleTypes, locations cache

	courses := make(map[string]courseJSON, len(term.Courses))
	for _, id := range term.CourseIDs() {
		course := term.Courses[id]

		sections := make(map[string]sectionJSON, len(course.Sections))
		for _, label := range course.SectionLabels() {
			section := course.Sections[label]

			var meetings []meetingJSON
			for _, meeting := range section.Meetings {
				meetings = append(meetings, meetingJSON{
					Period:   periods.intern(meeting.Period),
					Days:     meeting.Days,
					Location: locations.intern(meeting.Location),
				})
			}

			sections[label] = sectionJSON{
				CRN:           section.CRN,
				Meetings:      meetings,
				Credits:       section.Credits,
				ScheduleType:  scheduleTypes.intern(section.ScheduleType),
				Prerequisites: section.Prerequisites,
				Instructors:   section.Instructors,
			}
		}

		courses[string(id)] = courseJSON{
			Title:    course.Title,
			Sections: sections,
			Tier:     int(tiers[id]),
		}
	}

	data, err := json.Marshal(termJSON{
		Term:    term.Code,
		Name:    term.Name,
		Courses: courses,
		Caches: cachesJSON{
			Periods:       periods.values,
			ScheduleTypes: scheduleTypes.values,
			Locations:     locations.values,
		},
	})
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ReadTerm loads a term dataset written by WriteTerm. Tiers are not read
// back; they are recomputed from the attached prerequisites when needed.
func ReadTerm(path string) (*catalog.Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var decoded termJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	if decoded.Term == "" {
		return nil, errors.New("term dataset missing term code")
	}

	periods := cache{values: decoded.Caches.Periods}
	scheduleTypes := cache{values: decoded.Caches.ScheduleTypes}
	locations := cache{values: decoded.Caches.Locations}

	term := &catalog.Term{Code: decoded.Term, Name: decoded.Name, Courses: make(map[catalog.CourseID]*catalog.Course)}
	for id, courseRecord := range decoded.Courses {
		course := &catalog.Course{
			ID:       catalog.CourseID(id),
			Title:    courseRecord.Title,
			Sections: make(map[string]*catalog.Section),
		}

		for label, sectionRecord := range courseRecord.Sections {
			scheduleType, err := scheduleTypes.lookup(sectionRecord.ScheduleType)
			if err != nil {
				return nil, err
			}

			section := &catalog.Section{
				CRN:           sectionRecord.CRN,
				ScheduleType:  scheduleType,
				Credits:       sectionRecord.Credits,
				Instructors:   sectionRecord.Instructors,
				Prerequisites: sectionRecord.Prerequisites,
			}

			for _, meetingRecord := range sectionRecord.Meetings {
				period, err := periods.lookup(meetingRecord.Period)
				if err != nil {
					return nil, err
				}
				location, err := locations.lookup(meetingRecord.Location)
				if err != nil {
					return nil, err
				}
				section.Meetings = append(section.Meetings, catalog.Meeting{
					Period:   period,
					Days:     meetingRecord.Days,
					Location: location,
				})
			}

			course.Sections[label] = section
		}

		term.Courses[course.ID] = course
	}

	return term, nil
}
