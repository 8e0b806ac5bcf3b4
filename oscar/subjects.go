package oscar

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Subject struct {
	Code string
	Name string
}

// ScrapeSubjects lists the subject codes offered in a term, taken from the
// class search form's subject select control.
func (c Client) ScrapeSubjects(termCode string) ([]Subject, error) {
	form := url.Values{}
	form.Add("p_calling_proc", "bwckschd.p_disp_dyn_sched")
	form.Add("p_term", termCode)

	response, err := http.PostForm(c.BaseURL+termDatePath, form)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	return ParseSubjects(document)
}

func ParseSubjects(document *goquery.Document) ([]Subject, error) {
	var subjects []Subject

	options := document.Find(`select[name="sel_subj"]`).Find("option")
	options.Each(func(i int, option *goquery.Selection) {
		code, exists := option.Attr("value")
		if !exists || code == "" || code == "dummy" {
			return
		}
		subjects = append(subjects, Subject{
			Code: code,
			Name: strings.TrimSpace(option.Text()),
		})
	})

	if len(subjects) == 0 {
		return nil, errors.New("unable to determine any subject codes")
	}
	return subjects, nil
}
