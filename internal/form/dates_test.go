package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValidator_UnsetToValidRange(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindWork)
	assert.Equal(t, Unset, e.DateState)

	require.NoError(t, s.SetStart(e.ID, "2020-01-15"))
	assert.Equal(t, Unset, e.DateState)
	assert.Equal(t, "2020-01-15", e.MinEnd)

	require.NoError(t, s.SetEnd(e.ID, "2021-06-30"))
	assert.Equal(t, ValidRange, e.DateState)
	assert.Equal(t, "2021-06-30", s.MustGet("work_end_0"))
}

func TestDateValidator_SameDayIsValid(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindEducation)

	require.NoError(t, s.SetStart(e.ID, "2020-01-15"))
	require.NoError(t, s.SetEnd(e.ID, "2020-01-15"))

	assert.Equal(t, ValidRange, e.DateState)
}

func TestDateValidator_EndBeforeStartIsClearedImmediately(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindWork)
	require.NoError(t, s.SetStart(e.ID, "2022-05-01"))

	err := s.SetEnd(e.ID, "2021-05-01")

	var orderErr *DateOrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, "work_end_0", orderErr.Field)
	assert.Equal(t, "2021-05-01", orderErr.End)
	assert.NotEmpty(t, orderErr.Notice())
	assert.Equal(t, "", s.MustGet("work_end_0"))
	assert.Equal(t, Invalid, e.DateState)
	assert.Equal(t, orderErr.Notice(), e.InlineError)
	assert.Equal(t, map[string]string{"work_end_0": orderErr.Notice()}, s.InlineErrors())
}

func TestDateValidator_NextCommitClearsInvalid(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindWork)
	require.NoError(t, s.SetStart(e.ID, "2022-05-01"))
	require.Error(t, s.SetEnd(e.ID, "2021-05-01"))

	require.NoError(t, s.SetEnd(e.ID, "2023-01-01"))

	assert.Equal(t, ValidRange, e.DateState)
	assert.Empty(t, e.InlineError)
}

func TestDateValidator_LaterStartInvalidatesExistingEnd(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindEducation)
	require.NoError(t, s.SetStart(e.ID, "2018-09-01"))
	require.NoError(t, s.SetEnd(e.ID, "2019-06-30"))

	err := s.SetStart(e.ID, "2020-01-01")

	var orderErr *DateOrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, "edu_end_0", orderErr.Field)
	assert.Equal(t, "", s.MustGet("edu_end_0"))
	assert.Equal(t, "2020-01-01", s.MustGet("edu_start_0"))
	assert.Equal(t, "2020-01-01", e.MinEnd)
	assert.Equal(t, Invalid, e.DateState)
}

func TestDateValidator_EarlierStartKeepsRange(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindEducation)
	require.NoError(t, s.SetStart(e.ID, "2018-09-01"))
	require.NoError(t, s.SetEnd(e.ID, "2019-06-30"))

	require.NoError(t, s.SetStart(e.ID, "2017-09-01"))

	assert.Equal(t, ValidRange, e.DateState)
	assert.Equal(t, "2019-06-30", s.MustGet("edu_end_0"))
}

func TestDateValidator_CurrentActive(t *testing.T) {
	s := New(&Options{EndDatePolicy: EndDateRequired})
	e := s.Entries(KindWork)[0]
	require.NoError(t, s.Set("work_title_0", "Engineer"))
	require.NoError(t, s.Set("work_company_0", "Acme"))
	require.NoError(t, s.SetStart(e.ID, "2020-01-01"))
	require.NoError(t, s.SetEnd(e.ID, "2021-01-01"))

	require.NoError(t, s.SetCurrent(e.ID, true))

	assert.Equal(t, CurrentActive, e.DateState)
	assert.True(t, e.EndDisabled)
	assert.Equal(t, "", s.MustGet("work_end_0"))
	assert.NotContains(t, s.RequiredMissing(), "work_end_0")
	assert.ErrorIs(t, s.SetEnd(e.ID, "2022-01-01"), ErrFieldDisabled)

	doc := s.Document("")
	require.Len(t, doc.WorkExperience, 1)
	assert.True(t, doc.WorkExperience[0].Current)
	assert.Equal(t, "", doc.WorkExperience[0].EndDate)
}

func TestDateValidator_CurrentToggledOffRequiresEndAgain(t *testing.T) {
	s := New(&Options{EndDatePolicy: EndDateRequired})
	e := s.Entries(KindWork)[0]
	require.NoError(t, s.SetCurrent(e.ID, true))

	require.NoError(t, s.SetCurrent(e.ID, false))

	assert.Equal(t, Unset, e.DateState)
	assert.False(t, e.EndDisabled)
	assert.Contains(t, s.RequiredMissing(), "work_end_0")
	assert.NoError(t, s.SetEnd(e.ID, "2022-01-01"))
}

func TestDateValidator_OptionalPolicyNeverRequiresEnd(t *testing.T) {
	s := New(&Options{EndDatePolicy: EndDateOptional})
	missing := s.RequiredMissing()

	assert.NotContains(t, missing, "work_end_0")
	assert.NotContains(t, missing, "edu_end_0")
	assert.Contains(t, missing, "work_title_0")
	assert.Contains(t, missing, "edu_institution_0")
}

func TestDateValidator_CurrentOnlyForWork(t *testing.T) {
	s := emptyState()
	edu := s.AddEntry(KindEducation)

	assert.ErrorIs(t, s.SetCurrent(edu.ID, true), ErrCurrentNotSupported)
}

func TestDateValidator_CertificationHasNoRange(t *testing.T) {
	s := emptyState()
	cert := s.AddEntry(KindCertification)

	assert.Error(t, s.SetStart(cert.ID, "2020-01-01"))
}

func TestDateValidator_MalformedDate(t *testing.T) {
	s := emptyState()
	e := s.AddEntry(KindWork)

	err := s.SetStart(e.ID, "03/05/2023")

	var formatErr *DateFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "work_start_0", formatErr.Field)
	assert.Equal(t, "", s.MustGet("work_start_0"))
}

func TestParseEndDatePolicy(t *testing.T) {
	p, err := ParseEndDatePolicy("Required")
	require.NoError(t, err)
	assert.Equal(t, EndDateRequired, p)

	p, err = ParseEndDatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, EndDateOptional, p)

	_, err = ParseEndDatePolicy("sometimes")
	assert.Error(t, err)
}

func TestDateState_String(t *testing.T) {
	assert.Equal(t, "unset", Unset.String())
	assert.Equal(t, "valid_range", ValidRange.String())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "current_active", CurrentActive.String())
}
