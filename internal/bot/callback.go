package bot

import "strings"

// Callback verbs carried in inline-button data. The wire form is
// "<verb>_<SYMBOL>" (bare verb when no symbol applies), kept compatible
// with the buttons already out in chat histories.
const (
	VerbDepth           = "derinlik"
	VerbTheoretical     = "teorik"
	VerbFundamental     = "temel"
	VerbTechnical       = "teknik"
	VerbNews            = "haber"
	VerbAddFavorite     = "favori_ekle"
	VerbRefresh         = "yenile"
	VerbCheckMembership = "check_membership"
)

// callbackVerbs is ordered longest-first so that verbs containing the
// separator (favori_ekle) are matched before any shorter verb could
// claim their prefix.
var callbackVerbs = []string{
	VerbCheckMembership,
	VerbAddFavorite,
	VerbDepth,
	VerbTheoretical,
	VerbTechnical,
	VerbRefresh,
	VerbFundamental,
	VerbNews,
}

// Callback is the decoded form of inline-button data.
type Callback struct {
	Verb   string
	Symbol string
}

func encodeCallback(verb, symbol string) string {
	if symbol == "" {
		return verb
	}
	return verb + "_" + strings.ToUpper(symbol)
}

func decodeCallback(data string) (Callback, bool) {
	for _, verb := range callbackVerbs {
		if data == verb {
			return Callback{Verb: verb}, true
		}
		if rest, ok := strings.CutPrefix(data, verb+"_"); ok && rest != "" {
			return Callback{Verb: verb, Symbol: strings.ToUpper(rest)}, true
		}
	}
	return Callback{}, false
}
