// Package knowledge provides the immutable reference data behind a consulting
// session: the service catalog, the ATS scoring rubric, curated success
// stories, referral openings, the sales playbook, and form vocabularies.
// Everything here is loaded once and never mutated at runtime.
package knowledge

// Catalog item ids. The recommendation engine is constrained to these keys.
const (
	ProductCareerPlan        = "CAREER_PLAN"
	ProductPTA               = "PTA"
	ProductHRTraining        = "HR_TRAINING"
	ProductCourse1V1         = "COURSE_1V1"
	ProductSubmissionService = "SUBMISSION_SERVICE"
	ProductTestPractice      = "TEST_PRACTICE"
)

// CatalogItem is one purchasable service line with its fixed reference price.
type CatalogItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

var catalog = []CatalogItem{
	{
		ID:          ProductCareerPlan,
		Name:        "千里马计划 (全流程)",
		Price:       29800,
		Description: "简历+笔试+面试+内推+Offer保障",
	},
	{
		ID:          ProductPTA,
		Name:        "PTA 名企实战",
		Price:       9800,
		Description: "4-8周远程项目，MBB/投行/大厂导师带教",
	},
	{
		ID:          ProductHRTraining,
		Name:        "500强人事实训",
		Price:       6800,
		Description: "真实系统操作，适合HR/行政方向",
	},
	{
		ID:          ProductCourse1V1,
		Name:        "1V1 深度定制课",
		Price:       3500,
		Description: "针对性解决单面/群面/职业规划痛点(每课时)",
	},
	{
		ID:          ProductSubmissionService,
		Name:        "大厂代投包",
		Price:       4500,
		Description: "人工筛选精准投递，涵盖隐形岗位",
	},
	{
		ID:          ProductTestPractice,
		Name:        "笔试/OT通关",
		Price:       2000,
		Description: "SHL/PwC真题库+辅助练习",
	},
}

// Catalog returns the purchasable service items in display order.
// The returned slice is a copy; callers may not mutate the catalog.
func Catalog() []CatalogItem {
	items := make([]CatalogItem, len(catalog))
	copy(items, catalog)
	return items
}

// CatalogIDs returns the known catalog keys in display order.
func CatalogIDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, item := range catalog {
		ids = append(ids, item.ID)
	}
	return ids
}

// LookupCatalogItem returns the catalog item for an id, if it exists.
func LookupCatalogItem(id string) (CatalogItem, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}
