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

	"gannot/gerror"
	"gannot/resources"
)

func testStore() *resources.Store {
	return &resources.Store{
		Gulf: map[resources.SegmentType]resources.GulfGroups{
			resources.SegmentBaseword: {
				"NOUN": {
					{Baseword: "كتاب", Gloss: "book", Context: "هذا كتاب"},
					{Baseword: "بيت", Gloss: "house"},
				},
				"NOUN:FS": {
					{Baseword: "سيارة", Gloss: "car"},
				},
				"NOUN:MS": {
					{Baseword: "ولد", Gloss: "boy"},
				},
			},
			resources.SegmentEnclitic: {
				"PRON": {
					{Clitic: "ها", Gloss: "her"},
				},
			},
		},
		MSA: map[string][]resources.MSAExample{
			"VERB": {
				{Segment: "كتب", Gloss: "to write"},
			},
		},
		CODA: []resources.CODAExample{
			{Raw: "هاد", Coda: "هذا"},
		},
	}
}

func TestExamplesGulfApproximateBaseword(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Approximate", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("تاب", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.GulfGroups, 1)
	assert.Len(t, ans.GulfGroups["NOUN"], 1)
	assert.Equal(t, "كتاب", ans.GulfGroups["NOUN"][0].Baseword)
}

func TestExamplesGulfExactBaseword(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Exact", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("تاب", testStore(), filter)
	assert.NoError(t, err)
	assert.Empty(t, ans.GulfGroups)
}

func TestExamplesGulfGlossQuery(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Approximate", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("book", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.GulfGroups, 1)
	assert.Equal(t, "book", ans.GulfGroups["NOUN"][0].Gloss)
}

func TestExamplesGulfEncliticQuery(t *testing.T) {
	filter, err := NewExamplesFilter("Enclitic", "Exact", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("ها", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.GulfGroups["PRON"], 1)
}

func TestExamplesPOSExactHasAtMostOneGroup(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Exact", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("NOUN", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.GulfGroups, 1)
	assert.Contains(t, ans.GulfGroups, "NOUN")
}

func TestExamplesPOSApproximateIsSupersetOfExact(t *testing.T) {
	store := testStore()
	approx, err := NewExamplesFilter("Baseword", "Approximate", "Gulf Tags")
	assert.NoError(t, err)
	exact, err := NewExamplesFilter("Baseword", "Exact", "Gulf Tags")
	assert.NoError(t, err)
	ansApprox, err := Examples("NOUN", store, approx)
	assert.NoError(t, err)
	ansExact, err := Examples("NOUN", store, exact)
	assert.NoError(t, err)
	for key := range ansExact.GulfGroups {
		assert.Contains(t, ansApprox.GulfGroups, key)
	}
	assert.Len(t, ansApprox.GulfGroups, 3)
}

func TestExamplesCompositePOSFeatureIntersection(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Approximate", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("NOUN:F", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.GulfGroups, 1)
	assert.Contains(t, ans.GulfGroups, "NOUN:FS")
}

func TestExamplesMSASegmentQuery(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Approximate", "MSA Tags")
	assert.NoError(t, err)
	ans, err := Examples("كتب", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.MSAGroups["VERB"], 1)
}

func TestExamplesCODAExact(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Exact", "CODA Examples")
	assert.NoError(t, err)
	ans, err := Examples("هاد", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.CODA, 1)

	ans, err = Examples("ها", testStore(), filter)
	assert.NoError(t, err)
	assert.Empty(t, ans.CODA)
}

func TestExamplesCODAMatchesNormalizedSide(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Exact", "CODA Examples")
	assert.NoError(t, err)
	ans, err := Examples("هذا", testStore(), filter)
	assert.NoError(t, err)
	assert.Len(t, ans.CODA, 1)
}

func TestExamplesEmptyStore(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Approximate", "Gulf Tags")
	assert.NoError(t, err)
	ans, err := Examples("NOUN", &resources.Store{}, filter)
	assert.NoError(t, err)
	assert.Empty(t, ans.GulfGroups)
}

func TestExamplesEmptyQuery(t *testing.T) {
	filter, err := NewExamplesFilter("Baseword", "Approximate", "Gulf Tags")
	assert.NoError(t, err)
	_, err = Examples("", testStore(), filter)
	assert.ErrorAs(t, err, &gerror.InputError{})
}

func TestExamplesFilterWrongArity(t *testing.T) {
	_, err := NewExamplesFilter("Baseword", "Approximate")
	assert.ErrorAs(t, err, &gerror.InputError{})
}

func TestExamplesFilterUnknownEnum(t *testing.T) {
	_, err := NewExamplesFilter("Baseword", "Fuzzy", "Gulf Tags")
	assert.ErrorAs(t, err, &gerror.InputError{})

	_, err = NewExamplesFilter("Stem", "Exact", "Gulf Tags")
	assert.ErrorAs(t, err, &gerror.InputError{})

	_, err = NewExamplesFilter("Baseword", "Exact", "Dialect Tags")
	assert.ErrorAs(t, err, &gerror.InputError{})
}
