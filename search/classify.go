// Copyright 2024 The gannot authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search implements the query engine of the annotation tool:
// free-text search over the example dictionaries and over previously
// stored annotations. All functions are pure over their inputs and
// keep no state between calls.
package search

import (
	"strings"
	"unicode"
)

// arabicLetters is the fixed Arabic letter inventory used by the
// query-shape classifier.
const arabicLetters = "ءؤئابتثجحخدذرزسشصضطظعغفقكلمنهوىي"

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// QueryShape tells what kind of thing the user typed into
// the search bar.
type QueryShape int

const (
	// ShapeOther is a query matching none of the known shapes;
	// tag-resource searches for it come back empty.
	ShapeOther QueryShape = iota
	// ShapePOS is an (optionally composite) part-of-speech tag.
	ShapePOS
	// ShapeArabic is a query starting with an Arabic letter.
	ShapeArabic
	// ShapeGloss is an English gloss query.
	ShapeGloss
)

func isArabicLetter(r rune) bool {
	return strings.ContainsRune(arabicLetters, r)
}

// isPOSQuery reports whether the query, after stripping punctuation,
// consists of upper-case text: at least one cased rune and no
// lower-case ones.
func isPOSQuery(query string) bool {
	var hasCased bool
	for _, r := range query {
		if strings.ContainsRune(asciiPunctuation, r) {
			continue
		}
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

func isArabicQuery(query string) bool {
	for _, r := range query {
		return isArabicLetter(r)
	}
	return false
}

func isGlossQuery(query string) bool {
	for _, r := range query {
		if unicode.IsLower(r) && !isArabicLetter(r) {
			return true
		}
	}
	return false
}

// ClassifyQuery determines the query's shape with a fixed priority:
// POS tag, then Arabic-script, then gloss. A query mixing Arabic
// script with lower-case Latin characters satisfies both of the last
// two tests; the Arabic-script classification wins. This ordering is
// part of the search contract and must not be reshuffled without
// product input.
func ClassifyQuery(query string) QueryShape {
	switch {
	case isPOSQuery(query):
		return ShapePOS
	case isArabicQuery(query):
		return ShapeArabic
	case isGlossQuery(query):
		return ShapeGloss
	}
	return ShapeOther
}
