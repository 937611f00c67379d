package analysis

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"textstats/internal/domain"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello, World!", "hello world "},
		{"snake_case--Value", "snake_case value"},
		{"Grüße, STRASSE; Öl", "grüße strasse öl"},
		{"  a \t\n b  ", " a b "},
		{"...", " "},
		{"", ""},
		{"Feuer & Rauch 42", "feuer rauch 42"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotentAndLowercase(t *testing.T) {
	inputs := []string{
		"The Cat -- sat, on THE mat!!",
		"Äpfel und Birnen: 3 Stück.",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\n",
		"MiXeD_Case_123 #hash @at",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
		if strings.ToLower(once) != once {
			t.Errorf("Normalize(%q) = %q contains uppercase", in, once)
		}
		if Normalize(strings.ToUpper(in)) != once {
			t.Errorf("Normalize is case sensitive for %q", in)
		}
	}
}

func TestNormalizeUnmappedUppercase(t *testing.T) {
	// U+03D2 is uppercase but has no lowercase mapping, so it passes through.
	got := Normalize("ϒ-Feld ϒ")
	if got != "ϒ feld ϒ" {
		t.Fatalf("Normalize = %q", got)
	}
	if again := Normalize(got); again != got {
		t.Fatalf("not idempotent: %q -> %q", got, again)
	}
}

func TestTokenizeDropsEmpty(t *testing.T) {
	got := Tokenize(" fire and  smoke ")
	want := []string{"fire", "and", "smoke"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %#v, want %#v", got, want)
	}
	if len(Tokenize("   ")) != 0 {
		t.Fatal("expected no tokens for blank text")
	}
}

func TestParseStopwords(t *testing.T) {
	s, err := ParseStopwords(strings.NewReader("  Der \n\nund\r\nDIE\n   \n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	for _, w := range []string{"der", "und", "die"} {
		if !s.Contains(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	if s.Contains("Der") {
		t.Error("matching must be against lowercased tokens only")
	}
}

func TestParseStopwordsLineSeparators(t *testing.T) {
	s, err := ParseStopwords(strings.NewReader("der\rdie\u0085und\u2028das\u2029ein\r\neine\x0bim\x0c\x1cam\r"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"der", "die", "und", "das", "ein", "eine", "im", "am"}
	if s.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(want))
	}
	for _, w := range want {
		if !s.Contains(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
}

func TestParseStopwordsSmallReads(t *testing.T) {
	// one byte per read, so separators and multi-byte runes arrive split
	r := iotest.OneByteReader(strings.NewReader("der\r\ndie\u2028über\rund"))
	s, err := ParseStopwords(r)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"der", "die", "über", "und"} {
		if !s.Contains(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
}

func TestLoadStopwords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stopwords.txt")
	if err := os.WriteFile(path, []byte("and\nthe\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, warns := LoadStopwords(path)
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if !s.Contains("and") || !s.Contains("the") || s.Len() != 2 {
		t.Fatalf("unexpected stopword set, len=%d", s.Len())
	}

	s, warns = LoadStopwords(filepath.Join(dir, "missing.txt"))
	if s.Len() != 0 {
		t.Fatalf("missing file must yield an empty set, got %d", s.Len())
	}
	if len(warns) != 1 || warns[0].Code != domain.WarnStopwordsMissing {
		t.Fatalf("expected one stopwords_missing warning, got %v", warns)
	}
}

func TestStopwordsBuiltinAndNil(t *testing.T) {
	s := NewStopwords("feuer")
	if err := s.WithBuiltin("english"); err != nil {
		t.Fatal(err)
	}
	if !s.Contains("the") || !s.Contains("feuer") {
		t.Fatal("expected builtin and file words to be combined")
	}
	if s.Contains("smoke") {
		t.Fatal("smoke is not a stopword")
	}
	if err := s.WithBuiltin("klingon"); err == nil {
		t.Fatal("expected error for unknown builtin list")
	}
	var none *Stopwords
	if none.Contains("the") {
		t.Fatal("nil stopwords must filter nothing")
	}
	if got := none.Filter([]string{"a", "b"}); len(got) != 2 {
		t.Fatalf("nil Filter = %v", got)
	}
}

func TestAnalyzeDocument(t *testing.T) {
	stop := NewStopwords("and")
	stats, filtered, vocab := AnalyzeDocument("doc1", Normalize("Fire and smoke and fire"), stop, NewVocabulary())
	if stats.TotalWords != 5 || stats.UniqueWords != 2 || stats.NewWords != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !reflect.DeepEqual(filtered, []string{"fire", "smoke", "fire"}) {
		t.Fatalf("filtered = %#v", filtered)
	}
	if vocab.Len() != 2 || !vocab.Contains("fire") || vocab.Contains("and") {
		t.Fatalf("unexpected vocabulary, len=%d", vocab.Len())
	}

	empty, tokens, v2 := AnalyzeDocument("empty", "", stop, vocab)
	if empty.TotalWords != 0 || empty.UniqueWords != 0 || empty.NewWords != 0 || len(tokens) != 0 {
		t.Fatalf("empty text must yield zero counts, got %+v", empty)
	}
	if v2.Len() != 2 {
		t.Fatalf("vocabulary changed on empty document: %d", v2.Len())
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	docs := []domain.Document{
		{Name: "doc1", Text: "fire and smoke"},
		{Name: "doc2", Text: "fire and rain"},
	}
	res := Aggregate(docs, NewStopwords("and"))

	want := []domain.DocumentStats{
		{Ordinal: 1, Name: "doc1", TotalWords: 3, UniqueWords: 2, NewWords: 2},
		{Ordinal: 2, Name: "doc2", TotalWords: 3, UniqueWords: 2, NewWords: 1},
	}
	if !reflect.DeepEqual(res.Stats, want) {
		t.Fatalf("stats = %+v, want %+v", res.Stats, want)
	}
	wantTop := []domain.WordCount{{Word: "fire", Count: 2}, {Word: "smoke", Count: 1}, {Word: "rain", Count: 1}}
	if got := res.Top(10); !reflect.DeepEqual(got, wantTop) {
		t.Fatalf("top = %+v, want %+v", got, wantTop)
	}
	if res.Frequency.Count("and") != 0 {
		t.Fatal("stopwords must not be counted")
	}
	if text, ok := res.Text("doc2"); !ok || text != "fire and rain" {
		t.Fatalf("Text(doc2) = %q, %v", text, ok)
	}

	// Stored texts are not padded, so a phrase at the text edge is not counted.
	padded := SearchPhrases(res.Corpus, []string{"fire"}, MatchPadded)
	for _, r := range padded {
		if r.Count != 0 {
			t.Fatalf("padded match at text start must be 0, got %+v", r)
		}
	}
	if n := CountPhrase(" fire and smoke ", "fire", MatchPadded); n != 1 {
		t.Fatalf("space-padded text count = %d, want 1", n)
	}
	tokens := SearchPhrases(res.Corpus, []string{"fire"}, MatchTokens)
	for _, r := range tokens {
		if r.Count != 1 {
			t.Fatalf("token match must count the leading word, got %+v", r)
		}
	}
}

func TestCumulativeNewWords(t *testing.T) {
	docs := []domain.Document{
		{Name: "a", Text: "alpha beta gamma"},
		{Name: "b", Text: "beta gamma delta delta"},
		{Name: "c", Text: "epsilon alpha"},
		{Name: "d", Text: ""},
	}
	res := Aggregate(docs, NewStopwords())
	wantNew := []int{3, 1, 1, 0}
	wantUnique := []int{3, 3, 2, 0}
	wantTotal := []int{3, 4, 2, 0}
	for i, st := range res.Stats {
		if st.Ordinal != i+1 {
			t.Errorf("doc %d ordinal = %d", i, st.Ordinal)
		}
		if st.NewWords != wantNew[i] || st.UniqueWords != wantUnique[i] || st.TotalWords != wantTotal[i] {
			t.Errorf("doc %s = %+v", st.Name, st)
		}
		if st.TotalWords < st.UniqueWords {
			t.Errorf("doc %s: total < unique", st.Name)
		}
	}
	if res.Stats[0].NewWords != res.Stats[0].UniqueWords {
		t.Error("first document: new words must equal unique words")
	}
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(nil, nil)
	if len(res.Stats) != 0 || len(res.Corpus) != 0 || len(res.Top(20)) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestStepDoesNotMutate(t *testing.T) {
	stop := NewStopwords()
	a1 := NewAccumulator().Step(domain.Document{Name: "one", Text: "x y"}, stop)
	left := a1.Step(domain.Document{Name: "two", Text: "y z"}, stop)
	right := a1.Step(domain.Document{Name: "three", Text: "q"}, stop)

	if len(a1.Stats) != 1 || a1.Vocabulary.Len() != 2 || a1.Frequency.Count("y") != 1 {
		t.Fatalf("receiver changed: stats=%d vocab=%d", len(a1.Stats), a1.Vocabulary.Len())
	}
	if left.Stats[1].Name != "two" || right.Stats[1].Name != "three" {
		t.Fatalf("branches share state: %+v / %+v", left.Stats, right.Stats)
	}
	if left.Stats[1].NewWords != 1 || right.Stats[1].NewWords != 1 {
		t.Fatalf("unexpected new words: %d / %d", left.Stats[1].NewWords, right.Stats[1].NewWords)
	}
	if right.Vocabulary.Contains("z") || left.Vocabulary.Contains("q") {
		t.Fatal("vocabulary leaked between branches")
	}
	if right.Frequency.Count("y") != 1 || left.Frequency.Count("y") != 2 {
		t.Fatal("frequency leaked between branches")
	}
}

func TestTopTieOrder(t *testing.T) {
	res := Aggregate([]domain.Document{
		{Name: "1", Text: "x y"},
		{Name: "2", Text: "y x z z w"},
	}, nil)
	got := res.Top(0)
	want := []domain.WordCount{{Word: "x", Count: 2}, {Word: "y", Count: 2}, {Word: "z", Count: 2}, {Word: "w", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Top = %+v, want %+v", got, want)
	}
	if top2 := res.Top(2); len(top2) != 2 || top2[1].Word != "y" {
		t.Fatalf("Top(2) = %+v", top2)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Fatal("ranking not in descending count order")
		}
	}
}
