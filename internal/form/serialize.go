package form

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// bulletMarker matches a leading bullet (•, - or *) and the whitespace after it.
var bulletMarker = regexp.MustCompile(`^[•\-*]\s*`)

// FormatDate converts "2023-03-05" to "Mar 5, 2023". Empty or malformed input yields "".
// No timezone adjustment is applied.
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(InputDateLayout, value)
	if err != nil {
		return ""
	}
	return t.Format(types.DisplayDateLayout)
}

// SplitLines returns one item per non-blank line with any leading bullet marker
// stripped. A line holding only a marker counts as blank.
func SplitLines(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(bulletMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// StripBullet removes one leading bullet marker from a line.
func StripBullet(line string) string {
	return bulletMarker.ReplaceAllString(line, "")
}

// CollectSkills splits a comma-separated field, trims each token, and drops empty ones.
// Duplicates are kept.
func CollectSkills(value string) []string {
	skills := []string{}
	for _, token := range strings.Split(value, ",") {
		if token = strings.TrimSpace(token); token != "" {
			skills = append(skills, token)
		}
	}
	return skills
}

// MergeSkills is the case-sensitive set union of existing and suggested skills,
// in first-seen order.
func MergeSkills(existing, suggested []string) []string {
	seen := make(map[string]bool, len(existing)+len(suggested))
	merged := make([]string, 0, len(existing)+len(suggested))
	for _, list := range [][]string{existing, suggested} {
		for _, skill := range list {
			if seen[skill] {
				continue
			}
			seen[skill] = true
			merged = append(merged, skill)
		}
	}
	return merged
}

// MergeSkillField merges suggested skills into a comma-separated field value.
// Suggestions are trimmed and empty ones dropped, the same as field tokens.
func MergeSkillField(field string, suggested []string) string {
	return strings.Join(MergeSkills(CollectSkills(field), CollectSkills(strings.Join(suggested, ","))), ", ")
}

// Document assembles a fresh Document from the state. photoURL is the data URI
// of the stored photo, or "".
func (s *State) Document(photoURL string) *types.Document {
	doc := types.NewDocument()

	doc.PersonalInfo = types.PersonalInfo{
		Name:  s.fields[FieldName],
		Title: s.fields[FieldTitle],
		Email: s.fields[FieldEmail],
		Phone: s.fields[FieldPhone],
		Address: types.Address{
			City:    s.fields[FieldCity],
			Country: s.fields[FieldCountry],
		},
		LinkedIn: s.fields[FieldLinkedIn],
		Website:  s.fields[FieldWebsite],
		PhotoURL: photoURL,
	}
	doc.ProfessionalSummary = s.fields[FieldSummary]
	doc.Skills.Technical = CollectSkills(s.fields[FieldTechnicalSkills])
	doc.Skills.Soft = CollectSkills(s.fields[FieldSoftSkills])

	for _, e := range s.sections[KindWork] {
		if !included(e) {
			continue
		}
		end := FormatDate(e.values[AttrEnd])
		if e.Current {
			end = ""
		}
		doc.WorkExperience = append(doc.WorkExperience, types.WorkExperience{
			JobTitle:         e.values["title"],
			Company:          e.values["company"],
			Location:         e.values["location"],
			StartDate:        FormatDate(e.values[AttrStart]),
			EndDate:          end,
			Current:          e.Current,
			Responsibilities: SplitLines(e.values["responsibilities"]),
			Achievements:     []string{},
		})
	}

	for _, e := range s.sections[KindEducation] {
		if !included(e) {
			continue
		}
		doc.Education = append(doc.Education, types.Education{
			Degree:       e.values["degree"],
			FieldOfStudy: e.values["field"],
			Institution:  e.values["institution"],
			Location:     e.values["location"],
			StartDate:    FormatDate(e.values[AttrStart]),
			EndDate:      FormatDate(e.values[AttrEnd]),
			GPA:          e.values["gpa"],
		})
	}

	for _, e := range s.sections[KindCertification] {
		if !included(e) {
			continue
		}
		doc.Certifications = append(doc.Certifications, types.Certification{
			Name:                e.values["name"],
			IssuingOrganization: e.values["org"],
			DateObtained:        FormatDate(e.values["date"]),
		})
	}

	return doc
}

// included applies the serialization inclusion rule: every designated attribute non-empty.
func included(e *Entry) bool {
	for _, attr := range kindSchemas[e.Kind].include {
		if e.values[attr] == "" {
			return false
		}
	}
	return true
}
