package normalize

// isDakutenMark reports whether r is a combining, modifier-letter, or
// half-width dakuten (voiced sound) mark.
func isDakutenMark(r rune) bool {
	return r == '゙' || r == '゛' || r == 'ﾞ'
}

// isHandakutenMark reports whether r is a combining, modifier-letter, or
// half-width handakuten (semi-voiced sound) mark.
func isHandakutenMark(r rune) bool {
	return r == '゚' || r == '゜' || r == 'ﾟ'
}

// composeKana folds a kana base codepoint plus a following dakuten or
// handakuten mark into a single hiragana voiced/semi-voiced codepoint. The
// result is always hiragana regardless of whether base was hiragana,
// full-width katakana, or half-width katakana, since the width/kana fold
// step later in the chain would send it there anyway; composing directly
// avoids round-tripping through an intermediate katakana codepoint that
// would then need its own μ entry.
func composeKana(base, mark rune) (rune, bool) {
	if isDakutenMark(mark) {
		if v, ok := dakutenTable[base]; ok {
			return v, true
		}
		return 0, false
	}
	if isHandakutenMark(mark) {
		if v, ok := handakutenTable[base]; ok {
			return v, true
		}
		return 0, false
	}
	return 0, false
}

// dakutenTable maps hiragana, full-width katakana, and half-width katakana
// bases to their hiragana voiced form. う/ウ compose to ゔ, which has a
// precomposed hiragana codepoint; ゐ, ゑ, わ, を have no precomposed voiced
// hiragana codepoint and are left to the ordinary copy-through path when
// followed by a dakuten mark that cannot compose.
var dakutenTable = map[rune]rune{
	// hiragana bases
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
	'う': 'ゔ',

	// full-width katakana bases, folded straight to hiragana voiced forms
	'カ': 'が', 'キ': 'ぎ', 'ク': 'ぐ', 'ケ': 'げ', 'コ': 'ご',
	'サ': 'ざ', 'シ': 'じ', 'ス': 'ず', 'セ': 'ぜ', 'ソ': 'ぞ',
	'タ': 'だ', 'チ': 'ぢ', 'ツ': 'づ', 'テ': 'で', 'ト': 'ど',
	'ハ': 'ば', 'ヒ': 'び', 'フ': 'ぶ', 'ヘ': 'べ', 'ホ': 'ぼ',
	'ウ': 'ゔ',

	// half-width katakana bases
	'ｶ': 'が', 'ｷ': 'ぎ', 'ｸ': 'ぐ', 'ｹ': 'げ', 'ｺ': 'ご',
	'ｻ': 'ざ', 'ｼ': 'じ', 'ｽ': 'ず', 'ｾ': 'ぜ', 'ｿ': 'ぞ',
	'ﾀ': 'だ', 'ﾁ': 'ぢ', 'ﾂ': 'づ', 'ﾃ': 'で', 'ﾄ': 'ど',
	'ﾊ': 'ば', 'ﾋ': 'び', 'ﾌ': 'ぶ', 'ﾍ': 'べ', 'ﾎ': 'ぼ',
}

// handakutenTable maps hiragana, full-width katakana, and half-width
// katakana H-row bases to their hiragana semi-voiced form.
var handakutenTable = map[rune]rune{
	'は': 'ぱ', 'ひ': 'ぴ', 'ふ': 'ぷ', 'へ': 'ぺ', 'ほ': 'ぽ',
	'ハ': 'ぱ', 'ヒ': 'ぴ', 'フ': 'ぷ', 'ヘ': 'ぺ', 'ホ': 'ぽ',
	'ﾊ': 'ぱ', 'ﾋ': 'ぴ', 'ﾌ': 'ぷ', 'ﾍ': 'ぺ', 'ﾎ': 'ぽ',
}

// katakanaToHiragana folds a full-width katakana letter to its hiragana
// equivalent via the fixed Unicode block offset (U+30A1-U+30F6 → U+3041-
// U+3096), and half-width katakana via an explicit table since that block
// has no arithmetic relationship to hiragana.
func katakanaToHiragana(r rune) (rune, bool) {
	if r >= 'ァ' && r <= 'ヶ' {
		return r - 0x60, true
	}
	if v, ok := halfWidthKatakanaToHiragana[r]; ok {
		return v, true
	}
	return 0, false
}

var halfWidthKatakanaToHiragana = map[rune]rune{
	'｡': '。', '｢': '「', '｣': '」', '､': '、', '･': '・', 'ｰ': 'ー',
	'ｱ': 'あ', 'ｲ': 'い', 'ｳ': 'う', 'ｴ': 'え', 'ｵ': 'お',
	'ｶ': 'か', 'ｷ': 'き', 'ｸ': 'く', 'ｹ': 'け', 'ｺ': 'こ',
	'ｻ': 'さ', 'ｼ': 'し', 'ｽ': 'す', 'ｾ': 'せ', 'ｿ': 'そ',
	'ﾀ': 'た', 'ﾁ': 'ち', 'ﾂ': 'つ', 'ﾃ': 'て', 'ﾄ': 'と',
	'ﾅ': 'な', 'ﾆ': 'に', 'ﾇ': 'ぬ', 'ﾈ': 'ね', 'ﾉ': 'の',
	'ﾊ': 'は', 'ﾋ': 'ひ', 'ﾌ': 'ふ', 'ﾍ': 'へ', 'ﾎ': 'ほ',
	'ﾏ': 'ま', 'ﾐ': 'み', 'ﾑ': 'む', 'ﾒ': 'め', 'ﾓ': 'も',
	'ﾔ': 'や', 'ﾕ': 'ゆ', 'ﾖ': 'よ',
	'ﾗ': 'ら', 'ﾘ': 'り', 'ﾙ': 'る', 'ﾚ': 'れ', 'ﾛ': 'ろ',
	'ﾜ': 'わ', 'ｦ': 'を', 'ﾝ': 'ん',
	'ｧ': 'ぁ', 'ｨ': 'ぃ', 'ｩ': 'ぅ', 'ｪ': 'ぇ', 'ｫ': 'ぉ',
	'ｬ': 'ゃ', 'ｭ': 'ゅ', 'ｮ': 'ょ', 'ｯ': 'っ',
}
