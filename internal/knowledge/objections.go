package knowledge

// ObjectionScript pairs an empathetic opener with the substantive answer the
// consultant gives to a common buying objection.
type ObjectionScript struct {
	Objection string `json:"objection"`
	Empathy   string `json:"empathy"`
	Response  string `json:"response"`
}

var objectionScripts = []ObjectionScript{
	{
		Objection: "价格超出预算",
		Empathy:   "我非常理解您的顾虑，留学生的每一分钱都应该花在刀刃上。",
		Response:  "但这其实是对于职业生涯的一笔'种子投资'。我们不是在消费，而是在置换资源。您可以看下刚才的ROI分析，哪怕起薪提升2k，一年就是2.4万，基本回本。而且我们支持分期，首付压力很小。",
	},
	{
		Objection: "想先自己试试",
		Empathy:   "您的独立和行动力非常值得肯定，这是优秀职场人的潜质。",
		Response:  "不过2026届的形势非常特殊，大厂缩招严重，试错成本极高。一旦简历被锁，半年内都无法再投递。我们做的就是帮您'避坑'，利用我们的内推渠道和信息差，确保您的每一次投递都打在点上。",
	},
	{
		Objection: "不确定产品效果",
		Empathy:   "面对职业选择的慎重是对自己负责的表现。",
		Response:  "我们的方案是基于数万名留学生成功案例和大厂ATS算法倒推出来的。您可以看刚才展示的真实学员故事，像那位双非逆袭大厂的同学，起初情况比您还严峻。我们的服务是结果导向的，全流程保障。",
	},
	{
		Objection: "需要和父母商量",
		Empathy:   "这是非常正确且必要的，职业规划是家庭的大事。",
		Response:  "我稍后会把这份《职业发展规划报告》生成PDF发给您。您可以给父母看里面的数据分析、岗位梯队和薪资预测。父母往往担心的是信息不透明，这份专业的报告能让他们看到实实在在的规划路径。",
	},
}

// ObjectionScripts returns the curated objection-handling playbook.
func ObjectionScripts() []ObjectionScript {
	scripts := make([]ObjectionScript, len(objectionScripts))
	copy(scripts, objectionScripts)
	return scripts
}
