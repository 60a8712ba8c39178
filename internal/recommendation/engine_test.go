package recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/types"
)

type stubClient struct {
	response string
	err      error
	lastReq  llm.Request
}

func (c *stubClient) GenerateJSON(_ context.Context, req llm.Request) (string, error) {
	c.lastReq = req
	return c.response, c.err
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }
func (c *stubClient) Close() error                  { return nil }

const validRecommendationJSON = `{
	"core_strategy": "以 PTA 项目补齐实习短板，同步启动内推投递。",
	"initial_recommended_products": ["PTA", "SUBMISSION_SERVICE"],
	"sales_logic": {
		"value_prop": ["大厂导师带教"],
		"timing": ["秋招补录窗口"],
		"scarcity": ["本期名额仅剩3个"]
	},
	"closing_script": "我们先把名额锁定下来。"
}`

func testInputs() (*types.StudentProfile, *types.DiagnosisResult) {
	profile := knowledge.NewStudentProfile()
	profile.Name = "李想"
	return &profile, &types.DiagnosisResult{OverallScore: 82}
}

func TestRecommend_ValidResponse(t *testing.T) {
	client := &stubClient{response: validRecommendationJSON}
	engine := NewEngine(client)

	profile, diag := testInputs()
	result, err := engine.Recommend(context.Background(), profile, diag)
	require.NoError(t, err)

	assert.Equal(t, []string{"PTA", "SUBMISSION_SERVICE"}, result.InitialRecommendedProducts)
	assert.NotEmpty(t, result.ClosingScript)

	// The proposal call runs on the standard tier, parameterized by the
	// diagnosis score and the known catalog keys.
	assert.Equal(t, llm.TierStandard, client.lastReq.Tier)
	assert.Contains(t, client.lastReq.Prompt, "82")
	assert.Contains(t, client.lastReq.Prompt, knowledge.ProductCareerPlan)
}

func TestRecommend_FiltersUnknownProductIDs(t *testing.T) {
	client := &stubClient{response: `{
		"core_strategy": "策略",
		"initial_recommended_products": ["PTA", "MADE_UP_PRODUCT", "CAREER_PLAN"],
		"sales_logic": {"value_prop": ["a"], "timing": ["b"], "scarcity": ["c"]},
		"closing_script": "结束语"
	}`}
	engine := NewEngine(client)

	profile, diag := testInputs()
	result, err := engine.Recommend(context.Background(), profile, diag)
	require.NoError(t, err)

	assert.Equal(t, []string{"PTA", "CAREER_PLAN"}, result.InitialRecommendedProducts)
}

func TestRecommend_GenerationFailure(t *testing.T) {
	engine := NewEngine(&stubClient{err: errors.New("timeout")})

	profile, diag := testInputs()
	result, err := engine.Recommend(context.Background(), profile, diag)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	require.NotNil(t, result)
	assert.Equal(t, Fallback(), result)
}

func TestRecommend_SchemaViolation(t *testing.T) {
	engine := NewEngine(&stubClient{response: `{"core_strategy": "仅有策略"}`})

	profile, diag := testInputs()
	result, err := engine.Recommend(context.Background(), profile, diag)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, Fallback(), result)
}

func TestFallback_Deterministic(t *testing.T) {
	assert.Equal(t, Fallback(), Fallback())
}

func TestFallback_ProductsAreKnownCatalogIDs(t *testing.T) {
	result := Fallback()
	require.NotEmpty(t, result.InitialRecommendedProducts)
	for _, id := range result.InitialRecommendedProducts {
		_, ok := knowledge.LookupCatalogItem(id)
		assert.True(t, ok, "fallback recommends unknown product %s", id)
	}
	assert.NotEmpty(t, result.SalesLogic.ValueProp)
	assert.NotEmpty(t, result.SalesLogic.Timing)
	assert.NotEmpty(t, result.SalesLogic.Scarcity)
	assert.NotEmpty(t, result.ClosingScript)
}
