package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banweb/crawler/catalog"
	"github.com/banweb/crawler/prereq"
	"github.com/banweb/crawler/uniqueness"
)

func sampleTerm(t *testing.T) *catalog.Term {
	t.Helper()

	prerequisites, issues := prereq.Compile("CS 3510", "CS 1331 and (CS 2340 or CS 2110)")
	require.Empty(t, issues)

	return &catalog.Term{
		Code: "202502",
		Name: "Spring 2025",
		Courses: map[catalog.CourseID]*catalog.Course{
			"CS 3510": {
				ID:    "CS 3510",
				Title: "Design & Analysis of Algorithms",
				Sections: map[string]*catalog.Section{
					"A": {
						CRN:          "80345",
						ScheduleType: "Lecture",
						Credits:      3,
						Instructors:  []string{"X (P)"},
						Meetings: []catalog.Meeting{
							{Period: "10:10 am - 11:00 am", Days: "MWF", Location: "Klaus 1443"},
						},
						Prerequisites: &prerequisites,
					},
					"B": {
						CRN:          "80346",
						ScheduleType: "Lecture",
						Credits:      3,
						Instructors:  []string{"Y (P)"},
						Meetings: []catalog.Meeting{
							{Period: "10:10 am - 11:00 am", Days: "TR", Location: "Klaus 1443"},
						},
						Prerequisites: &prerequisites,
					},
				},
			},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	term := sampleTerm(t)
	path := filepath.Join(t.TempDir(), "202502.json")

	tiers, err := uniqueness.Categorize(term)
	require.NoError(t, err)
	require.NoError(t, WriteTerm(term, tiers, path))

	loaded, err := ReadTerm(path)
	require.NoError(t, err)
	assert.Equal(t, "Spring 2025", loaded.Name)
	assert.Equal(t, term, loaded)

	// Tiers are recomputable from the attached clauses alone.
	reloaded, err := uniqueness.Categorize(loaded)
	require.NoError(t, err)
	assert.Equal(t, tiers, reloaded)
}

func TestWriteInternsRepeatedStrings(t *testing.T) {
	term := sampleTerm(t)
	path := filepath.Join(t.TempDir(), "202502.json")
	require.NoError(t, WriteTerm(term, map[catalog.CourseID]uniqueness.Tier{}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Caches struct {
			Periods       []string `json:"periods"`
			ScheduleTypes []string `json:"scheduleTypes"`
			Locations     []string `json:"locations"`
		} `json:"caches"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Both sections share one period, schedule type, and location.
	assert.Equal(t, []string{"10:10 am - 11:00 am"}, decoded.Caches.Periods)
	assert.Equal(t, []string{"Lecture"}, decoded.Caches.ScheduleTypes)
	assert.Equal(t, []string{"Klaus 1443"}, decoded.Caches.Locations)
}

func TestReadTermRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"courses":{}}`), 0o644))

	_, err := ReadTerm(path)
	assert.Error(t, err)
}
