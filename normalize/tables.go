package normalize

// symbolTable folds punctuation and symbol variants (CJK punctuation,
// full-width brackets/quotes/math symbols, dash variants, full-width space)
// to their ASCII equivalent. Runes are written as literal characters; the
// trailing comments name the visually similar ones (curly vs straight
// quotes, the several dash widths) so they can be told apart.
var symbolTable = map[rune]string{
	// dashes and the kana long-sound mark, all folded to ASCII hyphen
	'－': "-", // full-width hyphen-minus
	'‐': "-", // hyphen
	'‑': "-", // non-breaking hyphen
	'‒': "-", // figure dash
	'–': "-", // en dash
	'—': "-", // em dash
	'―': "-", // horizontal bar
	'−': "-", // minus sign
	'ー': "-", // katakana-hiragana prolonged sound mark

	// slashes and punctuation
	'／': "/",  // full-width solidus
	'＼': "\\", // full-width reverse solidus
	'：': ":",  // full-width colon
	'；': ";",  // full-width semicolon
	'，': ",",  // full-width comma
	'、': ",",  // ideographic comma
	'。': ".",  // ideographic full stop
	'．': ".",  // full-width full stop

	// brackets
	'（': "(", '）': ")",
	'［': "[", '］': "]",
	'｛': "{", '｝': "}",
	'【': "[", '】': "]", // full-width black lenticular brackets
	'「': "\"", '」': "\"", // corner brackets
	'『': "\"", '』': "\"", // white corner brackets
	'〈': "<", '〉': ">", // angle brackets
	'《': "<<", '》': ">>", // double angle brackets

	// quotation marks
	'‘': "'", '’': "'", // curly single quotes
	'“': "\"", '”': "\"", // curly double quotes

	// math and misc symbols
	'×': "x",  // multiplication sign
	'÷': "/",  // division sign
	'±': "+-", // plus-minus sign
	'≤': "<=",
	'≥': ">=",
	'≠': "!=",
	'～': "~", '〜': "~", // full-width tilde, wave dash
	'＝': "=",
	'＋': "+",
	'％': "%",
	'＃': "#",
	'＆': "&",
	'＊': "*",
	'＠': "@",
	'！': "!",
	'？': "?",

	// full-width space
	'　': " ",
}

// superSubCircledDigits folds superscript, subscript, and circled numerals
// to their plain ASCII digit sequence.
var superSubCircledDigits = map[rune]string{
	'⁰': "0", '¹': "1", '²': "2", '³': "3", '⁴': "4",
	'⁵': "5", '⁶': "6", '⁷': "7", '⁸': "8", '⁹': "9",
	'₀': "0", '₁': "1", '₂': "2", '₃': "3", '₄': "4",
	'₅': "5", '₆': "6", '₇': "7", '₈': "8", '₉': "9",
	'①': "1", '②': "2", '③': "3", '④': "4", '⑤': "5",
	'⑥': "6", '⑦': "7", '⑧': "8", '⑨': "9", '⑩': "10",
	'⑪': "11", '⑫': "12", '⑬': "13", '⑭': "14", '⑮': "15",
	'⑯': "16", '⑰': "17", '⑱': "18", '⑲': "19", '⑳': "20",
}

// accentTable folds accented Latin letters to their base-ASCII or
// substitution spelling, covering French, German, Italian, Spanish,
// Portuguese, Scandinavian, Czech/Slovak, Polish, and Romanian diacritics.
// Each rune appears once even where several languages share a letter (é
// appears in French and Czech alike; it folds to "e" either way).
//
// Entries that expand to two ASCII letters (ä→ae, ß→ss, œ→oe, æ→ae) are the
// ones HasMultiCodepointAccent and ExpandQuery treat specially; entries
// with a single-letter target (é→e, ñ→n, č→c, ...) do not.
var accentTable = map[rune]string{
	// -> a
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'å': "a", 'ą': "a", 'ă': "a",
	'À': "a", 'Á': "a", 'Â': "a", 'Ã': "a", 'Å': "a", 'Ą': "a", 'Ă': "a",

	// -> e
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ě': "e", 'ę': "e",
	'È': "e", 'É': "e", 'Ê': "e", 'Ë': "e", 'Ě': "e", 'Ę': "e",

	// -> i
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'Ì': "i", 'Í': "i", 'Î': "i", 'Ï': "i",

	// -> o
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ø': "o",
	'Ò': "o", 'Ó': "o", 'Ô': "o", 'Õ': "o", 'Ø': "o",

	// -> u
	'ù': "u", 'ú': "u", 'û': "u", 'ů': "u",
	'Ù': "u", 'Ú': "u", 'Û': "u", 'Ů': "u",

	// -> y
	'ý': "y", 'ÿ': "y",
	'Ý': "y",

	// -> n
	'ñ': "n", 'ń': "n", 'ň': "n",
	'Ñ': "n", 'Ń': "n", 'Ň': "n",

	// -> c
	'ç': "c", 'ć': "c", 'č': "c",
	'Ç': "c", 'Ć': "c", 'Č': "c",

	// -> d, l, r, t (single-letter, one language each)
	'ď': "d", 'Ď': "d",
	'ł': "l", 'Ł': "l",
	'ř': "r", 'Ř': "r",
	'ť': "t", 'Ť': "t", 'ț': "t", 'Ț': "t",

	// -> s
	'ś': "s", 'š': "s", 'ș': "s",
	'Ś': "s", 'Š': "s", 'Ș': "s",

	// -> z
	'ż': "z", 'ź': "z", 'ž': "z",
	'Ż': "z", 'Ź': "z", 'Ž': "z",

	// German umlauts and ligatures with multi-letter substitution spellings
	'ä': "ae", 'Ä': "ae",
	'ö': "oe", 'Ö': "oe",
	'ü': "ue", 'Ü': "ue",
	'ß': "ss", 'ẞ': "ss",
	'œ': "oe", 'Œ': "oe",
	'æ': "ae", 'Æ': "ae",
}

// multiCodepointAccents is the subset of accentTable whose target expands
// to more than one ASCII letter: the only codepoints HasMultiCodepointAccent
// treats as "accented" for the purpose of disabling ExpandQuery's
// ae/oe/ue/ss substitution-spelling expansion.
var multiCodepointAccents = map[rune]bool{
	'ä': true, 'Ä': true, 'ö': true, 'Ö': true, 'ü': true, 'Ü': true,
	'ß': true, 'ẞ': true, 'œ': true, 'Œ': true, 'æ': true, 'Æ': true,
}
