package detect

// Common English letter n-grams, compiled in. The sets lean toward
// name-forming n-grams since signup local parts are mostly personal names.

var commonBigrams = []string{
	"th", "he", "in", "er", "an", "re", "nd", "on", "en", "at",
	"ou", "ed", "ha", "to", "or", "it", "is", "hi", "es", "ng",
	"ar", "al", "le", "se", "ve", "ra", "ri", "ro", "li", "la",
	"ne", "na", "ni", "no", "ma", "mi", "mo", "me", "da", "de",
	"di", "do", "ta", "ti", "te", "be", "bo", "ca", "co", "ch",
	"ck", "el", "ll", "ss", "st", "tr", "ur", "us", "ul", "um",
	"un", "ot", "om", "op", "ow", "oy", "pe", "po", "pr", "ph",
	"sa", "si", "so", "su", "sh", "ke", "ki", "ge", "gi", "go",
	"gu", "ja", "jo", "ju", "wa", "we", "wi", "ya", "yo", "ye",
	"as", "ac", "ad", "ag", "am", "ap", "ab", "av", "aw", "ay",
	"ba", "bi", "br", "bu", "cl", "cr", "cu", "dr", "du", "ea",
	"ee", "ei", "em", "et", "ev", "ew", "ex", "fa", "fe", "fi",
	"fo", "fr", "ga", "gr", "ho", "hu", "id", "ie", "if", "il",
	"im", "io", "ir", "iv", "ka", "ko", "ks", "ku", "lo", "lu",
	"ly", "mp", "mu", "nt", "nu", "oa", "ob", "oc", "od", "of",
	"og", "ol", "oo", "os", "pa", "pi", "pl", "pu", "qu", "rd",
	"rk", "rm", "rn", "rt", "ry", "sc", "sk", "sl", "sm", "sn",
	"sp", "sw", "tu", "tw", "ty", "ue", "ui", "va", "vi", "vo",
	"wh", "wo", "xa", "za", "zi", "zo",
}

var commonTrigrams = []string{
	"the", "and", "ing", "ion", "ent", "for", "ati", "ter", "ate", "ers",
	"res", "ere", "est", "tio", "tha", "her", "ver", "are", "int", "ons",
	"all", "eve", "ith", "ted", "ess", "not", "ive", "his", "hat", "ect",
	"son", "ton", "man", "ann", "nne", "lle", "ell", "ill", "ian", "ina",
	"ine", "ris", "tin", "ari", "ria", "mar", "art", "ath", "nat", "han",
	"sha", "lee", "ley", "joh", "ohn", "mic", "ich", "cha", "hae", "ael",
	"dav", "avi", "vid", "rob", "ert", "wil", "iam", "jam",
	"ame", "mes", "lin", "nda", "rew", "dre", "ndr", "chr", "hri",
	"ist", "oph", "phe", "dan", "ani", "iel", "mat", "att", "tth", "hew",
	"osh", "shu", "hua", "nic", "ico", "col", "ole", "emi", "mil", "ily",
	"sar", "ara", "rah", "eli", "liz", "iza", "abe", "bet", "eth", "oli",
	"liv", "via", "per", "ero", "ren", "ena", "den", "ber", "der", "ger",
	"mer", "ner", "ken", "len", "sen", "ven", "wen", "don", "ron", "lon",
	"mon", "car", "gar", "har", "lar", "par", "tar", "war", "ore", "ose",
}

// namePatternSuffixes are surname endings that legitimately score low on
// the common-word n-gram sets
var namePatternSuffixes = []string{
	"son", "sen", "man", "ton", "ham", "ley", "ner", "ski", "sky",
	"ez", "es", "is", "os", "us", "ov", "ev", "ic", "ak", "uk",
}
