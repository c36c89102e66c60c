package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func sampleDocument() *types.Document {
	doc := types.NewDocument()
	doc.PersonalInfo.Name = "Grace Hopper"
	doc.PersonalInfo.Title = "Rear Admiral"
	doc.PersonalInfo.Email = "grace@example.com"
	doc.PersonalInfo.Address.City = "Arlington"
	doc.PersonalInfo.Address.Country = "USA"
	doc.ProfessionalSummary = "Compiler pioneer <3"
	doc.WorkExperience = append(doc.WorkExperience, types.WorkExperience{
		JobTitle:         "Programmer",
		Company:          "Eckert-Mauchly",
		StartDate:        "Jan 1, 1949",
		Current:          true,
		Responsibilities: []string{"Wrote A-0"},
	})
	doc.Skills.Technical = []string{"COBOL", "FLOW-MATIC"}
	doc.Certifications = append(doc.Certifications, types.Certification{Name: "PE", DateObtained: "Mar 5, 1950"})
	return doc
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleDocument())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Grace Hopper</h1>")
	assert.Contains(t, html, "Compiler pioneer &lt;3")
	assert.Contains(t, html, "Jan 1, 1949 - Present")
	assert.Contains(t, html, "<li>Wrote A-0</li>")
	assert.Contains(t, html, "COBOL, FLOW-MATIC")
	assert.Contains(t, html, "grace@example.com | Arlington, USA")
	assert.Contains(t, html, "PE (Mar 5, 1950)")
	assert.NotContains(t, html, "Education")
	assert.NotContains(t, html, "<img")
}

func TestRenderHTML_Photo(t *testing.T) {
	doc := sampleDocument()
	doc.PersonalInfo.PhotoURL = "data:image/png;base64,iVBORw0KGgo="
	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, `<img src="data:image/png;base64,iVBORw0KGgo="`)

	doc.PersonalInfo.PhotoURL = "javascript:alert(1)"
	html, err = RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<img")
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "Jan 1, 2020 - Mar 5, 2023", DateRange("Jan 1, 2020", "Mar 5, 2023", false))
	assert.Equal(t, "Jan 1, 2020 - Present", DateRange("Jan 1, 2020", "", true))
	assert.Equal(t, "Present", DateRange("", "", true))
	assert.Equal(t, "Jan 1, 2020", DateRange("Jan 1, 2020", "", false))
	assert.Equal(t, "", DateRange("", "", false))
}

func TestPDFFilename(t *testing.T) {
	now := time.Date(2024, 2, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "CV_Grace_Hopper_20240209.pdf", PDFFilename("Grace Hopper", now))
	assert.Equal(t, "CV_Unknown_20240209.pdf", PDFFilename("  ", now))
	assert.Equal(t, "CV_ab_20240209.pdf", PDFFilename(`a"/b`, now))
}
