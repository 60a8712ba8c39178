package types

// Radar subjects are the six fixed ATS dimensions every diagnosis must score.
// The generation prompt and the response schema both pin this vocabulary.
const (
	RadarEducation  = "学历门槛"
	RadarKeywords   = "关键词匹配"
	RadarInternship = "实习含金量"
	RadarTechStack  = "项目技术栈"
	RadarNetworking = "领英/人脉"
	RadarLanguage   = "语言能力"
)

// RadarSubjects lists the fixed radar vocabulary in canonical order.
func RadarSubjects() []string {
	return []string{
		RadarEducation,
		RadarKeywords,
		RadarInternship,
		RadarTechStack,
		RadarNetworking,
		RadarLanguage,
	}
}

// Company tier labels. Target companies are always bucketed into exactly
// these three tiers.
const (
	TierReach  = "冲刺 Reach"
	TierMatch  = "核心 Match"
	TierSafety = "保底 Safety"
)

// TierLabels lists the allowed company tier labels.
func TierLabels() []string {
	return []string{TierReach, TierMatch, TierSafety}
}

// Timeline stage statuses.
const (
	StageUpcoming  = "upcoming"
	StageCurrent   = "current"
	StageCompleted = "completed"
)

// RadarMetric is one axis of the competitiveness radar: the candidate score
// against the benchmark needed for the target tier of employers.
type RadarMetric struct {
	Subject   string `json:"subject"`
	Candidate int    `json:"candidate"`
	Benchmark int    `json:"benchmark"`
	FullMark  int    `json:"full_mark"`
}

// ATSScoreDetail is one row of the scoring-rubric breakdown.
type ATSScoreDetail struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
	Weight   string `json:"weight"`
	Comment  string `json:"comment"`
}

// TimelineItem is one stage of the month-granularity planning timeline.
type TimelineItem struct {
	Stage  string `json:"stage"`
	Time   string `json:"time"`
	Action string `json:"action"`
	Status string `json:"status"`
}

// CompanyTier groups target companies by how ambitious the application is.
type CompanyTier struct {
	Type        string   `json:"type"`
	Companies   []string `json:"companies"`
	SuccessRate string   `json:"success_rate"`
	Comment     string   `json:"comment,omitempty"`
}

// HardCriteria are the pass/fail screening gates applied before any scoring.
type HardCriteria struct {
	Education bool   `json:"education"`
	Major     bool   `json:"major"`
	English   bool   `json:"english"`
	Result    string `json:"result"` // "PASS" or "FAIL"
}

// SuccessCase is one curated student outcome used as social proof.
type SuccessCase struct {
	ID       string `json:"id,omitempty"`
	Profile  string `json:"profile"`
	Major    string `json:"major"`
	Before   string `json:"before"`
	After    string `json:"after"`
	Strategy string `json:"strategy"`
}

// ReferralResource is one curated internal-referral opening.
type ReferralResource struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Location string `json:"location"`
	Type     string `json:"type"` // 校招, 实习 or 社招
}

// SalaryProjection is one point of the salary-over-time comparison series.
type SalaryProjection struct {
	Year        string `json:"year"`
	Baseline    int    `json:"baseline"`
	WithService int    `json:"with_service"`
}

// PTARecommendation suggests a project-based internship targeting the
// profile's weakest scoring dimension.
type PTARecommendation struct {
	Role         string   `json:"role"`
	Companies    []string `json:"companies"`
	JDHighlights []string `json:"jd_highlights"`
}

// DiagnosisResult is the full competitiveness diagnosis for one student.
// The model produces the scored fields; SuccessCase and MatchedReferrals are
// selected locally and merged in afterwards, so they stay deterministic.
type DiagnosisResult struct {
	OverallScore       int                `json:"overall_score"`
	PassLine           int                `json:"pass_line"`
	ATSDetails         []ATSScoreDetail   `json:"ats_details"`
	RadarData          []RadarMetric      `json:"radar_data"`
	Timeline           []TimelineItem     `json:"timeline"`
	HardCriteria       HardCriteria       `json:"hard_criteria"`
	TargetCompanies    []CompanyTier      `json:"target_companies"`
	SuccessCase        SuccessCase        `json:"success_case"`
	MatchedReferrals   []ReferralResource `json:"matched_referrals"`
	SalaryProjection   []SalaryProjection `json:"salary_projection"`
	PTARecommendation  *PTARecommendation `json:"pta_recommendation,omitempty"`
	CompetitorAnalysis string             `json:"competitor_analysis"`
	RiskAnalysis       string             `json:"risk_analysis"`
	Summary            string             `json:"summary"`
}
