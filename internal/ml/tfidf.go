package ml

import (
	"math"
	"sort"
	"strings"
)

// TfidfConfig controls vocabulary construction and term weighting.
type TfidfConfig struct {
	// MaxFeatures caps the vocabulary at the most frequent terms.
	MaxFeatures int `json:"max_features"`
	// MinDF drops terms appearing in fewer than MinDF documents.
	MinDF int `json:"min_df"`
	// MaxDF drops terms appearing in more than this fraction of documents.
	MaxDF float64 `json:"max_df"`
	// MinN and MaxN bound the character n-gram sizes.
	MinN int `json:"min_n"`
	MaxN int `json:"max_n"`
	// SublinearTF replaces raw term frequency with 1+ln(tf).
	SublinearTF bool `json:"sublinear_tf"`
}

// DefaultTfidfConfig mirrors the settings the model was tuned with:
// character 1..3-grams within word boundaries work well for Russian text,
// where word-level tokens are too sparse.
func DefaultTfidfConfig() TfidfConfig {
	return TfidfConfig{
		MaxFeatures: 5000,
		MinDF:       1,
		MaxDF:       0.85,
		MinN:        1,
		MaxN:        3,
		SublinearTF: true,
	}
}

// TfidfVectorizer builds a character n-gram vocabulary over a corpus and
// maps documents to L2-normalized TF-IDF vectors. N-grams are taken
// within word boundaries: each whitespace token is padded with a single
// space on both sides before slicing.
type TfidfVectorizer struct {
	Config TfidfConfig    `json:"config"`
	Vocab  map[string]int `json:"vocab"`
	IDF    []float64      `json:"idf"`
}

// NewTfidfVectorizer creates an unfitted vectorizer.
func NewTfidfVectorizer(cfg TfidfConfig) *TfidfVectorizer {
	return &TfidfVectorizer{Config: cfg}
}

// Fit builds the vocabulary and inverse document frequencies from docs.
// Vocabulary selection is deterministic: terms are filtered by document
// frequency, ranked by corpus frequency and assigned indices in
// lexicographic order.
func (t *TfidfVectorizer) Fit(docs []string) {
	df := make(map[string]int)
	total := make(map[string]int)

	for _, doc := range docs {
		counts := t.analyze(doc)
		for term, n := range counts {
			df[term]++
			total[term] += n
		}
	}

	maxDocs := int(t.Config.MaxDF * float64(len(docs)))
	if t.Config.MaxDF >= 1.0 || maxDocs < 1 {
		maxDocs = len(docs)
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n < t.Config.MinDF || n > maxDocs {
			continue
		}
		terms = append(terms, term)
	}

	if t.Config.MaxFeatures > 0 && len(terms) > t.Config.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:t.Config.MaxFeatures]
	}
	sort.Strings(terms)

	t.Vocab = make(map[string]int, len(terms))
	t.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		t.Vocab[term] = i
		t.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform maps docs to TF-IDF vectors, one per document, in order.
func (t *TfidfVectorizer) Transform(docs []string) []Vector {
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = t.TransformOne(doc)
	}
	return out
}

// TransformOne maps a single document to its TF-IDF vector.
func (t *TfidfVectorizer) TransformOne(doc string) Vector {
	counts := t.analyze(doc)

	indices := make([]int, 0, len(counts))
	for term := range counts {
		if idx, ok := t.Vocab[term]; ok {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	// Rebuild term lookup by index to fill values in sorted order.
	byIndex := make(map[int]float64, len(indices))
	for term, n := range counts {
		if idx, ok := t.Vocab[term]; ok {
			tf := float64(n)
			if t.Config.SublinearTF {
				tf = 1 + math.Log(tf)
			}
			byIndex[idx] = tf * t.IDF[idx]
		}
	}

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = byIndex[idx]
	}

	v := Vector{Indices: indices, Values: values, Dim: len(t.Vocab)}
	normalize(&v)
	return v
}

// Dim returns the vocabulary size.
func (t *TfidfVectorizer) Dim() int {
	return len(t.Vocab)
}

// analyze lowercases the document and counts character n-grams within
// word boundaries.
func (t *TfidfVectorizer) analyze(doc string) map[string]int {
	counts := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(doc)) {
		padded := []rune(" " + word + " ")
		for n := t.Config.MinN; n <= t.Config.MaxN; n++ {
			if n > len(padded) {
				break
			}
			for i := 0; i+n <= len(padded); i++ {
				counts[string(padded[i:i+n])]++
			}
		}
	}
	return counts
}

func normalize(v *Vector) {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= norm
	}
}
