package analysis

import (
	"github.com/RoaringBitmap/roaring"
)

// termIDs assigns dense ids to terms in first-seen order. It only ever
// grows, so ids stay valid for every Vocabulary sharing it.
type termIDs struct {
	ids map[string]uint32
}

func (t *termIDs) id(term string) uint32 {
	if id, ok := t.ids[term]; ok {
		return id
	}
	id := uint32(len(t.ids))
	t.ids[term] = id
	return id
}

// Vocabulary is the cumulative set of distinct filtered tokens seen so far.
// Merge never modifies the receiver.
type Vocabulary struct {
	terms *termIDs
	seen  *roaring.Bitmap
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		terms: &termIDs{ids: make(map[string]uint32)},
		seen:  roaring.New(),
	}
}

// Len returns the number of distinct terms in the vocabulary.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return int(v.seen.GetCardinality())
}

// Contains reports whether term has been merged into v.
func (v *Vocabulary) Contains(term string) bool {
	if v == nil {
		return false
	}
	id, ok := v.terms.ids[term]
	return ok && v.seen.Contains(id)
}

// Merge returns the union of v and terms together with the number of
// distinct terms that were not yet in v.
func (v *Vocabulary) Merge(terms []string) (*Vocabulary, int) {
	if v == nil {
		v = NewVocabulary()
	}
	doc := roaring.New()
	for _, t := range terms {
		doc.Add(v.terms.id(t))
	}
	fresh := roaring.AndNot(doc, v.seen).GetCardinality()
	return &Vocabulary{terms: v.terms, seen: roaring.Or(v.seen, doc)}, int(fresh)
}
