package normalize

import "testing"

func normString(s string) string {
	n, _ := Normalize([]rune(s))
	return string(n)
}

func TestNormalizeCombiningDakuten(t *testing.T) {
	// base \u304b + combining dakuten mark \u3099 folds to the
	// precomposed \u304c.
	got := normString("\u304b\u3099")
	want := "\u304c"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeCombiningDakutenSharesOneMuSpan(t *testing.T) {
	n, mu := Normalize([]rune("\u304b\u3099"))
	if len(n) != 1 || n[0] != '\u304c' {
		t.Fatalf("got %q", n)
	}
	if mu[0] != (Span{0, 2}) {
		t.Fatalf("got span %v, want {0 2}", mu[0])
	}
}

func TestNormalizeKatakanaToHiragana(t *testing.T) {
	got := normString("カタカナ")
	want := "かたかな"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeFullWidthAndCaseFold(t *testing.T) {
	got := normString("ＡＢＣabc")
	want := "abcabc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeGermanUmlautExpansion(t *testing.T) {
	got := normString("Müller")
	want := "mueller"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeAccentedLetterFold(t *testing.T) {
	got := normString("café")
	want := "cafe"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeDateSeparatorsConverge(t *testing.T) {
	slash := normString("2024/01/01")
	dash := normString("2024-01-01")
	if slash != dash {
		t.Fatalf("date forms diverged: %q vs %q", slash, dash)
	}
	if slash != "20240101" {
		t.Fatalf("got %q, want %q", slash, "20240101")
	}
}

func TestNormalizeThousandsSeparatorDropped(t *testing.T) {
	got := normString("1,234,567")
	want := "1234567"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeDecimalSeparatorKept(t *testing.T) {
	got := normString("3.14")
	want := "3.14"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeEuropeanDecimalComma(t *testing.T) {
	got := normString("12,5")
	want := "12.5"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeMixedSeparatorTypesDesignatesLastAsDecimal(t *testing.T) {
	got := normString("1.234,56")
	want := "1234.56"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeLeadingDigitAllZeroTrailingIsThousands(t *testing.T) {
	got := normString("1.000")
	want := "1000"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeDigitRunSharesOneMuSpan(t *testing.T) {
	n, mu := Normalize([]rune("1,234,567"))
	if len(n) != len(mu) {
		t.Fatalf("len(n)=%d != len(mu)=%d", len(n), len(mu))
	}
	first := mu[0]
	for _, m := range mu {
		if m != first {
			t.Fatalf("digit run does not share one μ span: %v vs %v", m, first)
		}
	}
	if first != (Span{0, 9}) {
		t.Fatalf("got span %v, want {0 9}", first)
	}
}

func TestToOriginalRoundTrip(t *testing.T) {
	v := []rune("café")
	n, mu := Normalize(v)
	if string(n) != "cafe" {
		t.Fatalf("got %q", n)
	}
	got, ok := ToOriginal(mu, Span{0, len(n)})
	if !ok {
		t.Fatal("ToOriginal returned false")
	}
	if got != (Span{0, len(v)}) {
		t.Fatalf("got %v, want {0 %d}", got, len(v))
	}
}

func TestToOriginalOutOfRange(t *testing.T) {
	_, mu := Normalize([]rune("abc"))
	if _, ok := ToOriginal(mu, Span{0, 10}); ok {
		t.Fatal("expected false for out-of-range span")
	}
	if _, ok := ToOriginal(mu, Span{2, 2}); ok {
		t.Fatal("expected false for empty span")
	}
}

func TestExpandQuerySubstitutionSpellings(t *testing.T) {
	variants := ExpandQuery([]rune("strasse"))
	found := map[string]bool{}
	for _, v := range variants {
		found[string(v)] = true
	}
	if !found["strasse"] {
		t.Fatalf("expected unexpanded form among variants: %v", found)
	}
	if len(variants) <= 1 {
		t.Fatalf("expected multiple substitution-spelling variants, got %d", len(variants))
	}
}

func TestExpandQuerySkipsWhenAccentedLetterPresent(t *testing.T) {
	variants := ExpandQuery([]rune("straße"))
	if len(variants) != 1 {
		t.Fatalf("expected no expansion for query containing ß, got %d variants", len(variants))
	}
	if string(variants[0]) != "straße" {
		t.Fatalf("got %q", variants[0])
	}
}

func TestHasMultiCodepointAccent(t *testing.T) {
	if !HasMultiCodepointAccent([]rune("Straße")) {
		t.Fatal("expected true for ß")
	}
	if HasMultiCodepointAccent([]rune("café")) {
		t.Fatal("expected false for é, which folds to a single letter")
	}
}
