package lexicon

import "regexp"

// NegationRule describes one "not merely X but Y" construction.
// Detect is used for counting, Rewrite captures the two clauses and
// Template references them as ${1} and ${2}.
type NegationRule struct {
	Name     string
	Detect   *regexp.Regexp
	Rewrite  *regexp.Regexp
	Template string
}

// NegationRules are tried in declaration order.
var NegationRules = []NegationRule{
	{
		Name:     "zhe_bujinjin_gengshi",
		Detect:   regexp.MustCompile(`这不仅仅是.*更是`),
		Rewrite:  regexp.MustCompile(`这不仅仅是(.*?)更是(.*?)`),
		Template: "这不只是${1}，更是${2}",
	},
	{
		Name:     "zhe_buzhi_ershi",
		Detect:   regexp.MustCompile(`这不只是.*而是`),
		Rewrite:  regexp.MustCompile(`这不只是(.*?)而是(.*?)`),
		Template: "其实这不是${1}，而是${2}",
	},
	{
		Name:     "bujinjin_erqieshi",
		Detect:   regexp.MustCompile(`不仅仅是.*而且是`),
		Rewrite:  regexp.MustCompile(`不仅仅是(.*?)而且是(.*?)`),
		Template: "这不仅是${1}，而且是${2}",
	},
	{
		Name:     "bujin_gengshi",
		Detect:   regexp.MustCompile(`不仅是.*更是`),
		Rewrite:  regexp.MustCompile(`不仅是(.*?)更是(.*?)`),
		Template: "这不只是${1}，还是${2}",
	},
	{
		Name:     "buzhi_ershi",
		Detect:   regexp.MustCompile(`不只是.*而是`),
		Rewrite:  regexp.MustCompile(`不只是(.*?)而是(.*?)`),
		Template: "其实它不是${1}，而是${2}",
	},
	{
		Name:     "bingfei_ershi",
		Detect:   regexp.MustCompile(`并非.*而是`),
		Rewrite:  regexp.MustCompile(`并非(.*?)而是(.*?)`),
		Template: "这不是${1}，而是${2}",
	},
}
