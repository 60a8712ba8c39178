package knowledge

import "github.com/highmark/consult-copilot/internal/types"

// TargetIndustries is the closed list of industries the intake form offers.
func TargetIndustries() []string {
	return []string{
		"金融/券商", "互联网/科技", "咨询/四大", "快消/零售",
		"传媒/广告", "国企/央企", "医药/生化", "新能源/制造",
	}
}

// UniversityLevels is the closed list of university tiers.
func UniversityLevels() []string {
	return []string{
		"985", "211", "双一流", "普通一本", "二本", "三本/专科",
		"海外QS前100", "海外QS前200", "海外其他",
	}
}

// Grades is the closed list of grade labels.
func Grades() []string {
	return []string{"大一", "大二", "大三", "大四", "研一", "研二", "研三", "已毕业"}
}

// MajorCategories is the closed list of major buckets résumé extraction
// classifies into.
func MajorCategories() []string {
	return []string{"商科金融", "理工科技", "文史哲法", "医药生化", "艺术设计", "其他"}
}

// NewStudentProfile returns a fresh profile with the default intake values a
// session starts from.
func NewStudentProfile() types.StudentProfile {
	return types.StudentProfile{
		UniversityLevel:   "普通一本",
		MajorCategory:     "商科金融",
		Grade:             "大三",
		GraduationYear:    "2026届",
		TargetIndustry:    []string{},
		TargetCity:        "不限",
		ExpectedSalary:    "10-15K",
		InternshipCount:   "0段",
		InternshipQuality: "无相关实习",
		Projects:          "无",
		Certificates:      "无",
		GPARanking:        "中等",
		EnglishLevel:      "四级",
		Status:            "刚开始了解",
	}
}
