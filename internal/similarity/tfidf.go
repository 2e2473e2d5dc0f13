// Package similarity scores text similarity using TF-IDF weighted
// cosine similarity over a document corpus.
package similarity

import (
	"math"
	"strings"
	"unicode"
)

// Scores computes the cosine similarity of query against every corpus entry,
// index-aligned with the corpus, each score in [0,1]. The vocabulary is built
// from the corpus with English stop-words removed; the query is projected
// onto that vocabulary.
//
// Degenerate inputs (empty corpus, or a corpus whose vocabulary is empty
// after stop-word removal) yield nil: callers treat that as "no signal".
func Scores(query string, corpus []string) []float64 {
	if len(corpus) == 0 {
		return nil
	}

	docs := make([][]string, len(corpus))
	vocab := make(map[string]int)
	for i, text := range corpus {
		docs[i] = tokenize(text)
		for _, term := range docs[i] {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return nil
	}

	idf := inverseDocumentFrequency(docs, vocab)

	queryVec := normalize(termFrequency(tokenize(query), vocab, idf))
	scores := make([]float64, len(corpus))
	if queryVec == nil {
		return scores
	}

	for i, doc := range docs {
		docVec := normalize(termFrequency(doc, vocab, idf))
		scores[i] = dot(queryVec, docVec)
	}
	return scores
}

// tokenize lowercases text and splits it into terms of two or more
// letters/digits, dropping English stop-words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// inverseDocumentFrequency computes smoothed IDF weights:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func inverseDocumentFrequency(docs [][]string, vocab map[string]int) []float64 {
	df := make([]int, len(vocab))
	for _, doc := range docs {
		seen := make(map[int]bool, len(doc))
		for _, term := range doc {
			idx := vocab[term]
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// termFrequency builds a TF-IDF vector for the given terms over the fitted
// vocabulary. Terms outside the vocabulary are ignored.
func termFrequency(terms []string, vocab map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(vocab))
	for _, term := range terms {
		if idx, ok := vocab[term]; ok {
			vec[idx] += idf[idx]
		}
	}
	return vec
}

// normalize scales a vector to unit length. Zero vectors return nil.
func normalize(vec []float64) []float64 {
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func dot(a, b []float64) float64 {
	if len(a) != len(b) || b == nil {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
