// Package oscar scrapes the registrar's class schedule system: the term
// and subject lists, per-subject section listings, and course detail pages
// carrying prerequisite prose. It produces the in-memory catalog values
// the compiler and categorizer consume.
package oscar

import (
	"errors"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/banweb/crawler/catalog"
)

const (
	dynamicSchedulePath = "/bwckschd.p_disp_dyn_sched"
	termDatePath        = "/bwckgens.p_proc_term_date"
	sectionListPath     = "/bwckschd.p_get_crse_unsec"
	courseDetailPath    = "/bwckctlg.p_disp_course_detail"
)

type Client struct {
	BaseURL string
}

// ScrapeTerms lists the terms the schedule system currently offers,
// newest first, as rendered in the term select control.
func (c Client) ScrapeTerms() ([]catalog.Term, error) {
	response, err := http.Get(c.BaseURL + dynamicSchedulePath)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	return ParseTerms(document)
}

func ParseTerms(document *goquery.Document) ([]catalog.Term, error) {
	var terms []catalog.Term

	options := document.Find("select#term_input_id").Find("option")
	options.Each(func(i int, option *goquery.Selection) {
		code, exists := option.Attr("value")
		if !exists || code == "" {
			return
		}
		terms = append(terms, catalog.Term{
			Code: code,
			Name: strings.TrimSpace(option.Text()),
		})
	})

	if len(terms) == 0 {
		return nil, errors.New("unable to determine any term codes")
	}
	return terms, nil
}
