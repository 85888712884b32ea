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

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gannot/annot"
	"gannot/gerror"
)

func testAnnotations() map[string][]annot.Record {
	return map[string][]annot.Record{
		"sara": {
			{
				Original: "هاد البيت",
				Raw:      "هاد البيت",
				Segments: []annot.Token{
					{
						{Text: "هاد", POS: "DEM", Lemma: "هاد"},
					},
					{
						{Text: "يكتب", POS: "VERB", VerbForm: "p3ms", Lemma: "كتب"},
					},
				},
			},
		},
		"jana": {
			{
				Original: "شو هاد",
				Raw:      "شو هاد",
				Coda:     "ما هذا",
				Segments: []annot.Token{
					{
						{Text: "شو", POS: "Q", Lemma: "شو"},
						{Text: "يكتبون", POS: "VERB", VerbForm: "p3mp", Lemma: "كتب"},
					},
				},
			},
		},
	}
}

func TestAnnotationsSegmentPOSSearch(t *testing.T) {
	filter, err := NewAnnotationsFilter("Segments", "POS", "Exact", "")
	assert.NoError(t, err)
	ans, err := Annotations("VERB", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 2)
}

func TestAnnotationsAllButExcludesMatchingRecord(t *testing.T) {
	filter, err := NewAnnotationsFilter("Segments", "POS", "Exact", "All But sara")
	assert.NoError(t, err)
	ans, err := Annotations("VERB", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 1)
	assert.Equal(t, "jana", ans[0].Annotator)
}

func TestAnnotationsSingleAnnotatorSelector(t *testing.T) {
	filter, err := NewAnnotationsFilter("Segments", "POS", "Exact", "sara")
	assert.NoError(t, err)
	ans, err := Annotations("VERB", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 1)
	assert.Equal(t, "sara", ans[0].Annotator)
}

func TestAnnotationsUnknownSelectorKeepsFullSet(t *testing.T) {
	filter, err := NewAnnotationsFilter("Segments", "POS", "Exact", "nobody")
	assert.NoError(t, err)
	ans, err := Annotations("VERB", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 2)
}

func TestAnnotationsDeduplicatesPerRecord(t *testing.T) {
	// both of sara's sub-segments (DEM, VERB) contain "E";
	// the record must still appear only once
	filter, err := NewAnnotationsFilter("Segments", "POS", "Approximate", "sara")
	assert.NoError(t, err)
	ans, err := Annotations("E", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 1)
}

func TestAnnotationsRawSearch(t *testing.T) {
	filter, err := NewAnnotationsFilter("Raw", "Text", "Approximate", "")
	assert.NoError(t, err)
	ans, err := Annotations("هاد", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 2)
}

func TestAnnotationsCODASearch(t *testing.T) {
	filter, err := NewAnnotationsFilter("CODA", "Text", "Exact", "")
	assert.NoError(t, err)
	ans, err := Annotations("ما هذا", testAnnotations(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 1)
	assert.Equal(t, "jana", ans[0].Annotator)
}

func TestAnnotationsCompositePOSRule(t *testing.T) {
	data := map[string][]annot.Record{
		"sara": {
			{
				Original: "x",
				Segments: []annot.Token{
					{{POS: "NOUN:FS"}},
				},
			},
			{
				Original: "y",
				Segments: []annot.Token{
					{{POS: "NOUN:MS"}},
				},
			},
		},
	}
	filter, err := NewAnnotationsFilter("Segments", "POS", "Approximate", "sara")
	assert.NoError(t, err)
	ans, err := Annotations("NOUN:F", data, filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 1)
	assert.Equal(t, "x", ans[0].Record.Original)
}

func TestAnnotationsExactSubsetOfApproximate(t *testing.T) {
	data := testAnnotations()
	exact, err := NewAnnotationsFilter("Segments", "Text", "Exact", "")
	assert.NoError(t, err)
	approx, err := NewAnnotationsFilter("Segments", "Text", "Approximate", "")
	assert.NoError(t, err)
	ansExact, err := Annotations("هاد", data, exact)
	assert.NoError(t, err)
	ansApprox, err := Annotations("هاد", data, approx)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(ansApprox), len(ansExact))
	for _, hit := range ansExact {
		assert.Contains(t, ansApprox, hit)
	}
}

func TestAnnotationsEmptySnapshot(t *testing.T) {
	filter, err := NewAnnotationsFilter("Raw", "Text", "Approximate", "")
	assert.NoError(t, err)
	ans, err := Annotations("هاد", map[string][]annot.Record{}, filter)
	assert.NoError(t, err)
	assert.Empty(t, ans)
}

func TestAnnotationsEmptyRecordList(t *testing.T) {
	filter, err := NewAnnotationsFilter("Raw", "Text", "Approximate", "")
	assert.NoError(t, err)
	ans, err := Annotations("هاد", map[string][]annot.Record{"sara": {}}, filter)
	assert.NoError(t, err)
	assert.Empty(t, ans)
}

func TestAnnotationsMissingSegments(t *testing.T) {
	data := map[string][]annot.Record{
		"sara": {
			{Original: "x", Raw: "x"},
		},
	}
	filter, err := NewAnnotationsFilter("Segments", "Text", "Approximate", "")
	assert.NoError(t, err)
	_, err = Annotations("x", data, filter)
	assert.ErrorAs(t, err, &gerror.MalformedRecordError{})
}

func TestAnnotationsMissingSegmentsIgnoredByRawSearch(t *testing.T) {
	data := map[string][]annot.Record{
		"sara": {
			{Original: "x", Raw: "x"},
		},
	}
	filter, err := NewAnnotationsFilter("Raw", "Text", "Exact", "")
	assert.NoError(t, err)
	ans, err := Annotations("x", data, filter)
	assert.NoError(t, err)
	assert.Len(t, ans, 1)
}

func TestAnnotationsFilterWrongArity(t *testing.T) {
	_, err := NewAnnotationsFilter("Raw", "Text", "Approximate")
	assert.ErrorAs(t, err, &gerror.InputError{})
}

func TestAnnotationsFilterUnknownEnum(t *testing.T) {
	_, err := NewAnnotationsFilter("Tokens", "Text", "Approximate", "")
	assert.ErrorAs(t, err, &gerror.InputError{})

	_, err = NewAnnotationsFilter("Raw", "Stem", "Approximate", "")
	assert.ErrorAs(t, err, &gerror.InputError{})
}

func TestAnnotationsEmptyQuery(t *testing.T) {
	filter, err := NewAnnotationsFilter("Raw", "Text", "Approximate", "")
	assert.NoError(t, err)
	_, err = Annotations("", testAnnotations(), filter)
	assert.ErrorAs(t, err, &gerror.InputError{})
}
