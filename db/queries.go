package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/banweb/crawler/catalog"
	"github.com/banweb/crawler/uniqueness"
)

const listTerms = `SELECT code, name FROM terms ORDER BY code DESC`
const selectTermName = `SELECT name FROM terms WHERE code = $1`
const selectCourses = `SELECT id, title FROM courses WHERE term_code = $1`
const selectSections = `SELECT course_id, label, crn, schedule_type, credits, instructors, prerequisites FROM sections WHERE term_code = $1`

const insertTerm = `INSERT INTO terms (code, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`

const insertCourse = `INSERT INTO courses (term_code, id, title, tier) VALUES ($1, $2, $3, $4) ON CONFLICT (term_code, id) DO UPDATE SET title=EXCLUDED.title, tier=EXCLUDED.tier`

const insertSection = `INSERT INTO sections (term_code, course_id, label, crn, schedule_type, credits, instructors, prerequisites) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (term_code, course_id, label) DO UPDATE SET crn=EXCLUDED.crn, schedule_type=EXCLUDED.schedule_type, credits=EXCLUDED.credits, instructors=EXCLUDED.instructors, prerequisites=EXCLUDED.prerequisites`

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) ListTerms() ([]catalog.Term, error) {
	rows, err := d.Pool.Query(context.Background(), listTerms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []catalog.Term
	for rows.Next() {
		var term catalog.Term
		if err := rows.Scan(&term.Code, &term.Name); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// SelectTerm reads a stored term back with its courses and sections.
// Prerequisites come back in their wire shape; a NULL column stays a nil
// pointer, matching a section that never had a value attached.
func (d *Database) SelectTerm(code string) (*catalog.Term, error) {
	term := &catalog.Term{Code: code, Courses: make(map[catalog.CourseID]*catalog.Course)}
	if err := d.Pool.QueryRow(context.Background(), selectTermName, code).Scan(&term.Name); err != nil {
		return nil, fmt.Errorf("term %v: %w", code, err)
	}

	courseRows, err := d.Pool.Query(context.Background(), selectCourses, code)
	if err != nil {
		return nil, err
	}
	defer courseRows.Close()

	for courseRows.Next() {
		course := &catalog.Course{Sections: make(map[string]*catalog.Section)}
		if err := courseRows.Scan(&course.ID, &course.Title); err != nil {
			return nil, err
		}
		term.Courses[course.ID] = course
	}
	if err := courseRows.Err(); err != nil {
		return nil, err
	}

	sectionRows, err := d.Pool.Query(context.Background(), selectSections, code)
	if err != nil {
		return nil, err
	}
	defer sectionRows.Close()

	for sectionRows.Next() {
		var courseID catalog.CourseID
		var label string
		var prerequisites []byte
		section := &catalog.Section{}

		if err := sectionRows.Scan(&courseID, &label, &section.CRN, &section.ScheduleType,
			&section.Credits, &section.Instructors, &prerequisites); err != nil {
			return nil, err
		}

		if prerequisites != nil {
			var value catalog.Prerequisites
			if err := json.Unmarshal(prerequisites, &value); err != nil {
				return nil, fmt.Errorf("course %v section %v: %w", courseID, label, err)
			}
			section.Prerequisites = &value
		}

		course := term.Courses[courseID]
		if course == nil {
			return nil, fmt.Errorf("section %v references unknown course %v", label, courseID)
		}
		course.Sections[label] = section
	}
	if err := sectionRows.Err(); err != nil {
		return nil, err
	}

	return term, nil
}

func (d *Database) InsertTerms(terms []catalog.Term) error {
	if len(terms) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, term := range terms {
		queuedQueries = append(queuedQueries, batch.Queue(insertTerm, term.Code, term.Name))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(context.Background(), &batch).Close(); err != nil {
		return err
	}

	return nil
}

// InsertTerm upserts a crawled term's courses and sections along with the
// categorizer's tiers. Compiled prerequisites are stored in their wire shape;
// a section that never had a value attached stores NULL.
func (d *Database) InsertTerm(term *catalog.Term, tiers map[catalog.CourseID]uniqueness.Tier) error {
	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	queuedQueries = append(queuedQueries, batch.Queue(insertTerm, term.Code, term.Name))

	for _, id := range term.CourseIDs() {
		course := term.Courses[id]
		queuedQueries = append(queuedQueries, batch.Queue(insertCourse, term.Code, string(course.ID), course.Title, int(tiers[id])))

		for _, label := range course.SectionLabels() {
			section := course.Sections[label]

			var prerequisites []byte
			if section.Prerequisites != nil {
				var err error
				prerequisites, err = json.Marshal(*section.Prerequisites)
				if err != nil {
					return err
				}
			}

			queuedQueries = append(queuedQueries, batch.Queue(
				insertSection,
				term.Code,
				string(course.ID),
				label,
				section.CRN,
				section.ScheduleType,
				section.Credits,
				section.Instructors,
				prerequisites,
			))
		}
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(context.Background(), &batch).Close(); err != nil {
		return err
	}

	return nil
}
