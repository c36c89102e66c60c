package form

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValues_BuildsContiguousSections(t *testing.T) {
	values := url.Values{
		"name":                    {"Ada"},
		"technical_skills":        {"Go, Go"},
		"work_title_3":            {"Later"},
		"work_company_3":          {"Beta"},
		"work_title_0":            {"First"},
		"work_company_0":          {"Alpha"},
		"work_start_0":            {"2020-01-01"},
		"work_end_0":              {"2021-01-01"},
		"work_responsibilities_0": {"• One\n• Two"},
		"edu_degree_1":            {"BSc"},
		"edu_institution_1":       {"Uni"},
		"unrelated":               {"ignored"},
	}

	s, notices := FromValues(values, nil)

	assert.Empty(t, notices)
	assert.Equal(t, 2, s.Count(KindWork))
	assert.Equal(t, 1, s.Count(KindEducation))
	assert.Equal(t, 0, s.Count(KindCertification))
	assert.Equal(t, "First", s.MustGet("work_title_0"))
	assert.Equal(t, "Later", s.MustGet("work_title_1"))
	assert.Equal(t, "BSc", s.MustGet("edu_degree_0"))

	doc := s.Document("")
	require.Len(t, doc.WorkExperience, 2)
	assert.Equal(t, "Jan 1, 2020", doc.WorkExperience[0].StartDate)
	assert.Equal(t, []string{"One", "Two"}, doc.WorkExperience[0].Responsibilities)
	assert.Equal(t, []string{"Go", "Go"}, doc.Skills.Technical)
}

func TestFromValues_CommitsDatesThroughValidator(t *testing.T) {
	values := url.Values{
		"work_title_0":   {"Dev"},
		"work_company_0": {"Acme"},
		"work_start_0":   {"2022-01-01"},
		"work_end_0":     {"2020-01-01"},
		"work_title_1":   {"Lead"},
		"work_company_1": {"Acme"},
		"work_start_1":   {"2023-01-01"},
		"work_end_1":     {"2024-01-01"},
		"work_current_1": {"on"},
	}

	s, notices := FromValues(values, &Options{EndDatePolicy: EndDateRequired})

	require.Len(t, notices, 1)
	var orderErr *DateOrderError
	require.ErrorAs(t, notices[0], &orderErr)
	assert.Equal(t, "work_end_0", orderErr.Field)

	entries := s.Entries(KindWork)
	assert.Equal(t, Invalid, entries[0].DateState)
	assert.Equal(t, CurrentActive, entries[1].DateState)
	assert.Equal(t, EndDateRequired, s.Policy())

	doc := s.Document("")
	assert.Equal(t, "", doc.WorkExperience[0].EndDate)
	assert.Equal(t, "", doc.WorkExperience[1].EndDate)
	assert.True(t, doc.WorkExperience[1].Current)
}

func TestFromValues_ReportsMalformedDates(t *testing.T) {
	s, notices := FromValues(url.Values{"edu_start_0": {"soon"}}, nil)

	require.Len(t, notices, 1)
	var formatErr *DateFormatError
	assert.ErrorAs(t, notices[0], &formatErr)
	assert.Equal(t, "", s.MustGet("edu_start_0"))
}

func TestFromValues_FormEncodedBody(t *testing.T) {
	body := "cert_name_0=CKA&cert_org_0=CNCF&cert_date_0=2023-03-05"
	values, err := url.ParseQuery(strings.TrimSpace(body))
	require.NoError(t, err)

	s, _ := FromValues(values, nil)

	doc := s.Document("")
	require.Len(t, doc.Certifications, 1)
	assert.Equal(t, "Mar 5, 2023", doc.Certifications[0].DateObtained)
}
