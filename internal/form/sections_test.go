package form

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyState() *State {
	return New(&Options{EndDatePolicy: EndDateOptional})
}

func TestNew_SeedsOneEntryPerKind(t *testing.T) {
	s := New(nil)
	for _, kind := range Kinds {
		assert.Equal(t, 1, s.Count(kind), "kind %s", kind)
	}
	assert.Equal(t, EndDateOptional, s.Policy())
}

func TestAddEntry_EmbedsIndexInEveryFieldName(t *testing.T) {
	s := emptyState()
	s.AddEntry(KindWork)
	e := s.AddEntry(KindWork)

	assert.Equal(t, 1, e.Index)
	assert.Equal(t, "Job #2", e.Label())
	assert.Equal(t, []string{
		"work_title_1", "work_company_1", "work_location_1", "work_start_1",
		"work_end_1", "work_current_1", "work_responsibilities_1",
	}, e.FieldNames())
}

func TestRemoveEntry_RenumbersRemaining(t *testing.T) {
	s := emptyState()
	first := s.AddEntry(KindWork)
	second := s.AddEntry(KindWork)
	third := s.AddEntry(KindWork)
	require.NoError(t, s.Set("work_title_1", "Second"))
	require.NoError(t, s.Set("work_title_2", "Third"))

	require.NoError(t, s.RemoveEntry(KindWork, first.ID))

	assert.Equal(t, 0, second.Index)
	assert.Equal(t, 1, third.Index)
	assert.Equal(t, []string{"Job #1", "Job #2"}, s.Labels(KindWork))
	assert.Equal(t, "Second", s.MustGet("work_title_0"))
	assert.Equal(t, "Third", s.MustGet("work_title_1"))

	_, err := s.Get("work_title_2")
	assert.Error(t, err)
}

func TestRemoveEntry_LastEntryLeavesEmptySection(t *testing.T) {
	s := emptyState()
	only := s.AddEntry(KindCertification)

	require.NoError(t, s.RemoveEntry(KindCertification, only.ID))

	assert.Equal(t, 0, s.Count(KindCertification))
	doc := s.Document("")
	assert.NotNil(t, doc.Certifications)
	assert.Empty(t, doc.Certifications)
}

func TestRemoveEntry_UnknownRef(t *testing.T) {
	s := emptyState()
	s.AddEntry(KindEducation)

	err := s.RemoveEntry(KindEducation, uuid.New())

	var notFound *EntryNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindEducation, notFound.Kind)
	assert.Equal(t, 1, s.Count(KindEducation))
}

func TestRemoveEntry_WrongKindDoesNotRemove(t *testing.T) {
	s := emptyState()
	work := s.AddEntry(KindWork)

	assert.Error(t, s.RemoveEntry(KindEducation, work.ID))
	assert.Equal(t, 1, s.Count(KindWork))
}

func TestRenumber_Idempotent(t *testing.T) {
	s := emptyState()
	for i := 0; i < 4; i++ {
		s.AddEntry(KindEducation)
	}
	before := s.Names(KindEducation)
	labels := s.Labels(KindEducation)

	s.Renumber(KindEducation)
	s.Renumber(KindEducation)

	assert.Equal(t, before, s.Names(KindEducation))
	assert.Equal(t, labels, s.Labels(KindEducation))
}

func TestAddRemoveSequences_IndicesStayContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		t.Run(fmt.Sprintf("run_%d", run), func(t *testing.T) {
			s := emptyState()
			for step := 0; step < 40; step++ {
				entries := s.Entries(KindWork)
				if len(entries) == 0 || rng.Intn(3) > 0 {
					s.AddEntry(KindWork)
					continue
				}
				victim := entries[rng.Intn(len(entries))]
				require.NoError(t, s.RemoveEntry(KindWork, victim.ID))

				seen := make(map[string]bool)
				for i, e := range s.Entries(KindWork) {
					require.Equal(t, i, e.Index)
					for _, name := range e.FieldNames() {
						_, _, index, err := ParseFieldName(name)
						require.NoError(t, err)
						require.Equal(t, i, index)
						require.False(t, seen[name], "duplicate field name %s", name)
						seen[name] = true
					}
				}
			}
		})
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := emptyState()
	s.AddEntry(KindWork)

	entries := s.Entries(KindWork)
	entries[0] = nil

	assert.NotNil(t, s.Entries(KindWork)[0])
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"work", KindWork},
		{"Education", KindEducation},
		{"certifications", KindCertification},
		{"cert", KindCertification},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("projects")
	var unknown *UnknownKindError
	assert.ErrorAs(t, err, &unknown)
}
