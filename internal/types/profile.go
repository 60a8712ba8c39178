// Package types provides type definitions for structured data used throughout the consult-copilot system.
package types

// StudentProfile holds everything the consultant knows about a student during
// one consulting session. Fields are mutated one at a time, either by the
// operator or by résumé extraction results; the struct is never replaced
// wholesale mid-session.
type StudentProfile struct {
	Name            string `json:"name"`
	University      string `json:"university"`
	UniversityLevel string `json:"university_level"`
	MajorCategory   string `json:"major_category"`
	Major           string `json:"major"`
	Grade           string `json:"grade"`
	GraduationYear  string `json:"graduation_year"`

	TargetIndustry []string `json:"target_industry"`
	TargetRole     string   `json:"target_role"`
	TargetCity     string   `json:"target_city"`
	ExpectedSalary string   `json:"expected_salary"`

	InternshipCount   string `json:"internship_count"`
	InternshipQuality string `json:"internship_quality"`
	Projects          string `json:"projects"`
	Certificates      string `json:"certificates"`
	GPARanking        string `json:"gpa_ranking"`
	EnglishLevel      string `json:"english_level"`

	Status string `json:"status"`

	// Résumé artifact reference, set when the operator uploads a document.
	ResumeFileName string `json:"resume_file_name,omitempty"`

	// ATSPreScore is the rough screening score produced by résumé extraction,
	// before the full diagnosis runs. Nil until extraction has happened.
	ATSPreScore *int `json:"ats_pre_score,omitempty"`
}

// ProfilePatch is the partial profile produced by résumé extraction. Only
// non-empty fields are applied to the session profile, so a degraded
// extraction never wipes data the operator already entered by hand.
type ProfilePatch struct {
	Name            string `json:"name"`
	University      string `json:"university"`
	UniversityLevel string `json:"university_level"`
	Major           string `json:"major"`
	MajorCategory   string `json:"major_category"`
	Grade           string `json:"grade"`
	GraduationYear  string `json:"graduation_year"`
	InternshipCount string `json:"internship_count"`
	EnglishLevel    string `json:"english_level"`
	GPARanking      string `json:"gpa_ranking"`
	ATSPreScore     *int   `json:"ats_pre_score"`
}
