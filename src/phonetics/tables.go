package phonetics

// prefixStress maps word-initial prefixes to the stress they put on the first syllable. Only
// Primary entries change the outcome; the others document prefixes that were considered.
var prefixStress = map[string]Mark{
	"un":  Primary,
	"re":  Unstressed,
	"in":  Unstressed,
	"de":  Unstressed,
	"dis": Unstressed,
	"pre": Unstressed,
	"pro": Unstressed,
	"con": Unstressed,
	"sub": Unstressed,
}

// suffixStress maps word-final suffixes to the stress they attract onto the final syllable.
var suffixStress = map[string]Mark{
	"tion": Primary,
	"sion": Primary,
	"ity":  Primary,
	"ment": Unstressed,
	"ness": Unstressed,
	"ly":   Unstressed,
	"ful":  Unstressed,
	"less": Unstressed,
	"ing":  Unstressed,
	"er":   Unstressed,
	"or":   Unstressed,
	"al":   Unstressed,
}

// penultimateSuffixes move stress onto the second-to-last syllable of words with three or more
// syllables. With the default suffixStress table these are already claimed by the final-syllable
// rule; the entry only takes effect if a suffix there is changed to Unstressed.
var penultimateSuffixes = []string{"ity", "tion", "sion"}

// canonicalPatterns lists the stress patterns seen for each syllable count, most common first.
var canonicalPatterns = map[int][]string{
	1: {"ˈ"},
	2: {"ˈ-", "-ˈ"},
	3: {"ˈ--", "-ˈ-", "--ˈ"},
	4: {"ˈ---", "-ˈ--", "--ˈ-", "---ˈ"},
	5: {"ˈ----", "-ˈ---", "--ˈ--", "---ˈ-", "----ˈ"},
	6: {"ˈ-----", "-ˈ----", "--ˈ---", "---ˈ--", "----ˈ-", "-----ˈ"},
}
