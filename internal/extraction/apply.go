package extraction

import (
	"strings"

	"github.com/highmark/consult-copilot/internal/types"
)

// Apply merges an extraction patch into a profile field by field. Only
// non-empty patch fields are written, so a sparse extraction never clobbers
// values the operator already typed in. The whole profile is never replaced.
//
// The placeholder name from a degraded extraction is applied only when the
// profile has no name yet; a real extracted name always wins.
func Apply(profile *types.StudentProfile, patch *types.ProfilePatch) {
	if profile == nil || patch == nil {
		return
	}

	if name := strings.TrimSpace(patch.Name); name != "" {
		if name != PlaceholderName || strings.TrimSpace(profile.Name) == "" {
			profile.Name = name
		}
	}
	if v := strings.TrimSpace(patch.University); v != "" {
		profile.University = v
	}
	if v := strings.TrimSpace(patch.UniversityLevel); v != "" {
		profile.UniversityLevel = v
	}
	if v := strings.TrimSpace(patch.Major); v != "" {
		profile.Major = v
	}
	if v := strings.TrimSpace(patch.MajorCategory); v != "" {
		profile.MajorCategory = v
	}
	if v := strings.TrimSpace(patch.Grade); v != "" {
		profile.Grade = v
	}
	if v := strings.TrimSpace(patch.GraduationYear); v != "" {
		profile.GraduationYear = v
	}
	if v := strings.TrimSpace(patch.InternshipCount); v != "" {
		profile.InternshipCount = v
	}
	if v := strings.TrimSpace(patch.EnglishLevel); v != "" {
		profile.EnglishLevel = v
	}
	if v := strings.TrimSpace(patch.GPARanking); v != "" {
		profile.GPARanking = v
	}
	if patch.ATSPreScore != nil {
		score := *patch.ATSPreScore
		profile.ATSPreScore = &score
	}
}
