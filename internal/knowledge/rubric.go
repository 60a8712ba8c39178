package knowledge

// ATSCriteriaText is the scoring rubric injected into the diagnosis prompt.
// It mirrors the Moka/北森 ATS models large employers screen with.
const ATSCriteriaText = `
海马职加-大厂ATS评分标准 (Moka/北森模型):
1. 硬性门槛 (一票否决): 学历(985/211/QS100优先), 专业相关度, 英语(六级/雅思).
2. 评分权重 (100分制):
   - 教育背景 (15-20%): 院校层次, GPA(前10%加分), 获奖.
   - 专业技能 (25-30%): 技能匹配度, 证书(CPA/CFA等).
   - 项目经验 (20-25%): STAR法则描述, 成果量化, 角色职责.
   - 实习经历 (15-20%): 企业知名度(500强), 岗位相关性, 时长.
   - 综合素质 (10-15%): 领导力, 沟通, 逻辑(AI面试/OT).
3. 筛选阈值: 通常70分通过.
`

// PassLine is the usual ATS screening threshold.
const PassLine = 70
