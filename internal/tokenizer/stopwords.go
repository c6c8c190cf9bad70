package tokenizer

// Domain stop-terms: particles and verbs too generic to carry signal, plus
// corporate boilerplate that appears in virtually every disclosure.
var stopTerms = map[string]struct{}{
	"の": {}, "に": {}, "は": {}, "を": {}, "た": {}, "が": {},
	"で": {}, "て": {}, "と": {}, "し": {}, "れ": {}, "さ": {},
	"ある": {}, "いる": {}, "する": {}, "なる": {}, "できる": {},
	"こと": {}, "もの": {}, "これ": {}, "それ": {},
	"当社": {}, "株式会社": {}, "会社": {}, "企業": {},
	"開示": {}, "適時開示": {}, "お知らせ": {}, "発表": {},
	"月": {}, "年": {}, "日": {}, "平成": {}, "令和": {},
	"上場": {}, "証券": {}, "報告": {}, "公開": {},
}

func isStopTerm(term string) bool {
	_, ok := stopTerms[term]
	return ok
}
