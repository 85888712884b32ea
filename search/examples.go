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
	"gannot/gerror"
	"gannot/resources"
)

// ExamplesResult is the outcome of an example search. Exactly one of
// the three sections is filled, matching the filter's resource kind;
// tag resources come back grouped by POS key, CODA examples as a flat
// list. An empty section is a valid result, not an error.
type ExamplesResult struct {
	Resource   ResourceKind                       `json:"resource"`
	GulfGroups map[string][]resources.GulfExample `json:"gulfGroups,omitempty"`
	MSAGroups  map[string][]resources.MSAExample  `json:"msaGroups,omitempty"`
	CODA       []resources.CODAExample            `json:"codaExamples,omitempty"`
}

// Examples searches one of the example dictionaries for entries
// matching the query under the filter. The query's shape (POS tag /
// Arabic script / gloss) decides which entry field is compared; the
// filter decides the dictionary, the Gulf segment type and the match
// mode. The store snapshot is never modified.
func Examples(query string, store *resources.Store, filter ExamplesFilter) (*ExamplesResult, error) {
	if query == "" {
		return nil, gerror.InputError{Msg: "empty query"}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	ans := &ExamplesResult{Resource: filter.Resource}
	switch filter.Resource {
	case ResourceGulfTags:
		ans.GulfGroups = searchGulf(query, store.GulfBySegmentType(filter.segmentType()), filter)
	case ResourceMSATags:
		ans.MSAGroups = searchMSA(query, store.MSA, filter.Match)
	case ResourceCODAExamples:
		ans.CODA = searchCODA(query, store.CODA, filter.Match)
	}
	return ans, nil
}

func searchGulf(query string, groups resources.GulfGroups, filter ExamplesFilter) map[string][]resources.GulfExample {
	ans := make(map[string][]resources.GulfExample)
	shape := ClassifyQuery(query)
	switch shape {
	case ShapePOS:
		for key, examples := range groups {
			if matchPos(query, key, filter.Match) {
				ans[key] = examples
			}
		}
	case ShapeArabic, ShapeGloss:
		for key, examples := range groups {
			var kept []resources.GulfExample
			for _, example := range examples {
				if matchString(query, gulfLookupValue(example, shape, filter), filter.Match) {
					kept = append(kept, example)
				}
			}
			if len(kept) > 0 {
				ans[key] = kept
			}
		}
	}
	return ans
}

// gulfLookupValue selects the entry field an Arabic-script or gloss
// query is compared against: the gloss for gloss queries, otherwise
// the baseword or the clitic depending on the segment type.
func gulfLookupValue(example resources.GulfExample, shape QueryShape, filter ExamplesFilter) string {
	if shape == ShapeGloss {
		return example.Gloss
	}
	if filter.segmentType() == resources.SegmentBaseword {
		return example.Baseword
	}
	return example.Clitic
}

func searchMSA(query string, groups map[string][]resources.MSAExample, mode MatchMode) map[string][]resources.MSAExample {
	ans := make(map[string][]resources.MSAExample)
	shape := ClassifyQuery(query)
	switch shape {
	case ShapePOS:
		for key, examples := range groups {
			if matchPos(query, key, mode) {
				ans[key] = examples
			}
		}
	case ShapeArabic, ShapeGloss:
		for key, examples := range groups {
			var kept []resources.MSAExample
			for _, example := range examples {
				value := example.Segment
				if shape == ShapeGloss {
					value = example.Gloss
				}
				if matchString(query, value, mode) {
					kept = append(kept, example)
				}
			}
			if len(kept) > 0 {
				ans[key] = kept
			}
		}
	}
	return ans
}

func searchCODA(query string, examples []resources.CODAExample, mode MatchMode) []resources.CODAExample {
	ans := make([]resources.CODAExample, 0)
	for _, example := range examples {
		if matchString(query, example.Raw, mode) || matchString(query, example.Coda, mode) {
			ans = append(ans, example)
		}
	}
	return ans
}
