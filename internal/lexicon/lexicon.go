// Package lexicon holds the static vocabulary the detector and the rewrite
// stages work from. Everything here is initialized once and never mutated.
package lexicon

// Replacement maps a canonical phrase to its ordered alternatives. The first
// alternative is the conservative choice, the last ones are the most colloquial.
type Replacement struct {
	Phrase       string
	Alternatives []string
}

// AIMarkers lists words statistically associated with generated text.
// Order is fixed so stages that scan it behave the same on every run.
var AIMarkers = []string{
	"此外", "至关重要", "深入探讨", "强调", "持久的", "增强", "培养", "获得",
	"突出", "相互作用", "复杂", "复杂性", "格局", "关键性的", "展示", "织锦",
	"证明", "宝贵的", "充满活力的", "无缝", "直观", "强大", "革命性",
	"创新", "发展", "趋势", "未来", "挑战", "机遇", "重要", "核心", "关键",
	"基础", "主要", "重点", "首要", "必要", "不可或缺",
}

var aiMarkerSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AIMarkers))
	for _, w := range AIMarkers {
		set[w] = struct{}{}
	}
	return set
}()

// IsAIMarker reports whether word is exactly one of the AI markers.
func IsAIMarker(word string) bool {
	_, ok := aiMarkerSet[word]
	return ok
}

// MarkerAlternatives are the colloquial rewrites used when dampening markers.
// Markers without an entry are detected but left alone.
var MarkerAlternatives = map[string][]string{
	"创新": {"出新招", "玩新花样", "搞创新"},
	"发展": {"变好", "进步", "往前走"},
	"重要": {"要紧", "关键", "有用"},
	"复杂": {"绕人", "麻烦", "不简单"},
	"趋势": {"风向", "走向", "势头"},
}

// Replacements is applied in order; earlier entries change what later ones see.
var Replacements = []Replacement{
	// formal connectives
	{"综上所述", []string{"总的来说", "总而言之", "整体来说", "直白点说"}},
	{"由此可见", []string{"看得出来", "这说明", "显而易见", "如此说来"}},
	{"众所周知", []string{"大家都知道", "众所周知", "谁都明白", "不用说"}},
	{"显而易见", []string{"很明显", "明摆着", "一眼就能看出来", "显然"}},
	{"不可或缺", []string{"少不了", "很重要", "不可少", "缺不了"}},
	{"至关重要", []string{"非常重要", "特别关键", "极其重要", "重中之重"}},
	{"与此同时", []string{"与此同时", "同时", "也", "并且"}},
	{"值得一提的是", []string{"值得一提的是", "要特别提一下", "有一点要注意", "这里要提一下"}},
	{"换句话说", []string{"换句话说", "也就是说", "说白了", "简单点说"}},
	{"例如", []string{"比如", "例如", "比方说", "举个例子"}},
	{"因此", []string{"所以", "因此", "故而", "这就导致"}},
	{"因为", []string{"因为", "由于", "鉴于", "就因为"}},
	{"但是", []string{"不过", "但是", "可是", "然而"}},
	{"而且", []string{"而且", "并且", "还", "甚至"}},
	{"然而", []string{"然而", "但是", "不过", "可"}},
	{"首先", []string{"首先", "第一", "先", "第一步"}},
	{"其次", []string{"其次", "第二", "接着", "下一步"}},
	{"最后", []string{"最后", "最终", "说到底", "最后一步"}},

	// stock openers
	{"在本文中", []string{"在这篇文章里", "在这里", "本文中", "在这篇内容里"}},
	{"我们将讨论", []string{"咱们来聊聊", "我们要讨论", "这里谈谈", "我们聊一聊"}},
	{"本文旨在", []string{"这篇文章主要想", "本文主要", "这篇文章旨在", "本文目的是"}},
	{"基于以上分析", []string{"根据上面的分析", "基于以上分析", "从上文分析来看", "综合以上分析"}},
	{"这表明", []string{"这说明", "这表明", "这表示", "这显示"}},
	{"研究表明", []string{"有研究显示", "研究表明", "研究发现", "据研究"}},
	{"数据显示", []string{"数据显示", "数据表明", "统计显示", "据数据统计"}},

	// mechanical verbs
	{"进行", []string{"做", "进行", "实施", "开展"}},
	{"开展", []string{"展开", "开展", "推进", "搞起来"}},
	{"实施", []string{"推行", "实施", "执行", "落实"}},
	{"实现", []string{"达到", "实现", "完成", "达成"}},
	{"完成", []string{"做完", "完成", "搞定", "结束"}},
	{"提供", []string{"给", "提供", "给予", "供应"}},
	{"获得", []string{"得到", "获得", "拿到", "取得"}},
	{"具有", []string{"有", "具有", "具备", "拥有"}},
	{"存在", []string{"有", "存在", "具备", "有很多"}},
	{"包含", []string{"包括", "包含", "涵盖", "里面有"}},
	{"涉及", []string{"牵扯到", "涉及", "关系到", "和...有关"}},
	{"使用", []string{"用", "使用", "运用", "采用"}},
	{"利用", []string{"借助", "利用", "使用", "充分利用"}},
	{"通过", []string{"通过", "借助", "经由", "靠"}},
	{"使得", []string{"让", "使得", "致使", "导致"}},
	{"导致", []string{"导致", "造成", "引起", "使得"}},
	{"引起", []string{"引发", "引起", "导致", "招来"}},
	{"产生", []string{"产生", "形成", "带来", "引发"}},
	{"发生", []string{"发生", "出现", "产生", "爆发"}},
	{"出现", []string{"出现", "显现", "发生", "冒出来"}},

	// triads
	{"无缝、直观和强大", []string{"简单好用", "功能强大", "易于操作", "用户友好"}},
	{"高效、稳定和可靠", []string{"运行稳定", "高效可靠", "性能稳定", "表现出色"}},
	{"创新、突破和发展", []string{"不断创新", "持续发展", "突破进步", "稳步前进"}},
	{"挑战、机遇和未来", []string{"机遇与挑战", "未来发展", "前景展望", "发展前景"}},
}

// SentenceStarters are colloquial openers prepended to sentences.
var SentenceStarters = []string{
	"你知道吗，", "有意思的是，", "我发现，", "其实，", "说真的，",
	"老实说，", "不得不说，", "值得注意的是，", "有趣的是，", "让人惊讶的是，",
	"你猜怎么着，", "我觉得吧，", "要我说，", "依我看，", "据我所知，",
}

// Fillers are modal particles appended to clauses.
var Fillers = []string{"呢", "啊", "吧", "啦", "嘛", "嘿", "嗯", "哦", "呀"}

// Synonyms groups common words with interchangeable variants.
var Synonyms = []Replacement{
	{"非常", []string{"特别", "十分", "极其", "超级", "格外"}},
	{"很多", []string{"不少", "许多", "好多", "一大堆", "挺多"}},
	{"重要", []string{"关键", "要紧", "重要", "重大", "紧要"}},
	{"有趣", []string{"有意思", "有趣", "好玩", "逗乐", "搞笑"}},
	{"简单", []string{"容易", "简单", "轻松", "小菜一碟", "好弄"}},
	{"困难", []string{"不容易", "困难", "麻烦", "费劲", "难办"}},
	{"喜欢", []string{"偏爱", "喜欢", "爱好", "钟情", "待见"}},
	{"讨厌", []string{"反感", "讨厌", "不喜欢", "厌恶", "烦"}},
	{"好", []string{"不错", "好", "棒", "优秀", "牛"}},
	{"坏", []string{"糟糕", "坏", "差劲", "不行", "糟"}},
}

// EmptyPhrases are stock phrases that say little.
var EmptyPhrases = []string{"发展趋势", "未来展望", "挑战与机遇", "核心竞争力", "重要意义"}

// ExaggerationPhrases are hyperbole markers.
var ExaggerationPhrases = []string{"革命性", "突破性", "颠覆性", "无与伦比", "独一无二"}

// VagueAttributionPhrases hedge a claim onto an unnamed source.
var VagueAttributionPhrases = []string{"研究表明", "数据显示", "专家认为", "据报道", "众所周知"}
