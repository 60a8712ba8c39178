package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_FixedItems(t *testing.T) {
	items := Catalog()
	require.Len(t, items, 6)

	prices := map[string]float64{
		ProductCareerPlan:        29800,
		ProductPTA:               9800,
		ProductHRTraining:        6800,
		ProductCourse1V1:         3500,
		ProductSubmissionService: 4500,
		ProductTestPractice:      2000,
	}
	for _, item := range items {
		want, ok := prices[item.ID]
		require.True(t, ok, "unexpected catalog id %s", item.ID)
		assert.Equal(t, want, item.Price)
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Description)
	}
}

func TestCatalogIDs_MatchesDisplayOrder(t *testing.T) {
	ids := CatalogIDs()
	items := Catalog()
	require.Equal(t, len(items), len(ids))
	for i, item := range items {
		assert.Equal(t, item.ID, ids[i])
	}
}

func TestLookupCatalogItem(t *testing.T) {
	item, ok := LookupCatalogItem(ProductPTA)
	require.True(t, ok)
	assert.Equal(t, "PTA 名企实战", item.Name)

	_, ok = LookupCatalogItem("NO_SUCH_PRODUCT")
	assert.False(t, ok)
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	items := Catalog()
	items[0].Price = 1

	fresh, _ := LookupCatalogItem(items[0].ID)
	assert.NotEqual(t, 1.0, fresh.Price)
}

func TestNewStudentProfile_Defaults(t *testing.T) {
	profile := NewStudentProfile()

	assert.Empty(t, profile.Name)
	assert.Equal(t, "普通一本", profile.UniversityLevel)
	assert.Equal(t, "大三", profile.Grade)
	assert.Equal(t, "2026届", profile.GraduationYear)
	assert.Equal(t, "不限", profile.TargetCity)
	assert.NotNil(t, profile.TargetIndustry)
	assert.Empty(t, profile.TargetIndustry)
	assert.Nil(t, profile.ATSPreScore)
}

func TestFormVocabularies_NonEmpty(t *testing.T) {
	assert.NotEmpty(t, TargetIndustries())
	assert.NotEmpty(t, UniversityLevels())
	assert.NotEmpty(t, Grades())
	assert.NotEmpty(t, MajorCategories())
}

func TestObjectionScripts(t *testing.T) {
	scripts := ObjectionScripts()
	require.NotEmpty(t, scripts)
	for _, s := range scripts {
		assert.NotEmpty(t, s.Objection)
		assert.NotEmpty(t, s.Response)
	}
}
