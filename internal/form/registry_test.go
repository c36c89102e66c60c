package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldName(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		attr  string
		index int
	}{
		{"work_title_2", KindWork, "title", 2},
		{"edu_start_0", KindEducation, "start", 0},
		{"cert_name_1", KindCertification, "name", 1},
		{"work_responsibilities_10", KindWork, "responsibilities", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, attr, index, err := ParseFieldName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.attr, attr)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestParseFieldName_Invalid(t *testing.T) {
	for _, name := range []string{
		"summary",
		"technical_skills",
		"work_title",
		"work_title_x",
		"work_title_-1",
		"proj_name_0",
		"work_gpa_0",
		"cert__0",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := ParseFieldName(name)
			var fieldErr *FieldNameError
			assert.ErrorAs(t, err, &fieldErr)
		})
	}
}

func TestGetSet_TopLevelFields(t *testing.T) {
	s := emptyState()

	require.NoError(t, s.Set(FieldName, "Ada Lovelace"))
	require.NoError(t, s.Set(FieldTechnicalSkills, "Go, SQL"))

	assert.Equal(t, "Ada Lovelace", s.MustGet(FieldName))
	assert.Equal(t, "Go, SQL", s.MustGet(FieldTechnicalSkills))
	assert.Equal(t, "", s.MustGet(FieldWebsite))
}

func TestGetSet_EntryFields(t *testing.T) {
	s := emptyState()
	s.AddEntry(KindWork)

	require.NoError(t, s.Set("work_company_0", "Acme"))
	require.NoError(t, s.Set("work_current_0", "on"))

	assert.Equal(t, "Acme", s.MustGet("work_company_0"))
	assert.Equal(t, "on", s.MustGet("work_current_0"))
	assert.True(t, s.Entries(KindWork)[0].Current)
}

func TestGetSet_OutOfRangeIndex(t *testing.T) {
	s := emptyState()
	s.AddEntry(KindEducation)

	assert.Error(t, s.Set("edu_degree_1", "MSc"))
	_, err := s.Get("edu_degree_3")
	assert.Error(t, err)
}

func TestSet_UnknownName(t *testing.T) {
	s := emptyState()
	assert.Error(t, s.Set("nickname", "x"))
}
