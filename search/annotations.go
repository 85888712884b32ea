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
	"sort"
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"

	"gannot/annot"
	"gannot/gerror"
)

// Hit is one matching annotation record together with its origin.
// The full record is returned (not just the phrase identifier) so the
// UI can render it without a second lookup; the identifier is still
// available as Record.Original.
type Hit struct {
	Annotator string       `json:"annotator"`
	Index     int          `json:"index"`
	Record    annot.Record `json:"record"`
}

// hitKey identifies a (annotator, record) pair in the per-call
// de-duplication set.
type hitKey struct {
	annotator string
	index     int
}

// flatValue is one extracted field value attributed to its record.
type flatValue struct {
	annotator string
	index     int
	value     string
}

// Annotations searches previously stored annotation records across
// annotators. The snapshot maps annotator name to record list; the
// filter selects the inspected feature/field, the match mode and the
// annotator set. Each record contributes at most one hit per call even
// if several of its sub-segments match. The de-duplication set is
// local to the call, so concurrent searches cannot interfere.
func Annotations(query string, byAnnotator map[string][]annot.Record, filter AnnotationsFilter) ([]Hit, error) {
	if query == "" {
		return nil, gerror.InputError{Msg: "empty query"}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	flattened, err := flattenRecords(byAnnotator, resolveAnnotators(byAnnotator, filter.Annotator), filter)
	if err != nil {
		return nil, err
	}

	ans := make([]Hit, 0)
	seen := make(map[hitKey]bool)
	for _, item := range flattened {
		if !matchAnnotationValue(query, item.value, filter) {
			continue
		}
		key := hitKey{item.annotator, item.index}
		if seen[key] {
			continue
		}
		seen[key] = true
		ans = append(ans, Hit{
			Annotator: item.annotator,
			Index:     item.index,
			Record:    byAnnotator[item.annotator][item.index],
		})
	}
	return ans, nil
}

// resolveAnnotators narrows the full annotator set according to the
// selector: a known name selects just that annotator, an
// `All But <name>` phrase drops one name, anything else (including an
// empty selector) keeps the whole set. The returned list is sorted so
// result order is stable across calls.
func resolveAnnotators(byAnnotator map[string][]annot.Record, selector string) []string {
	all := make([]string, 0, len(byAnnotator))
	for name := range byAnnotator {
		all = append(all, name)
	}
	sort.Strings(all)

	if collections.SliceContains(all, selector) {
		return []string{selector}
	}
	if strings.HasPrefix(selector, AllButPrefix) {
		excluded := strings.TrimPrefix(selector, AllButPrefix)
		ans := make([]string, 0, len(all))
		for _, name := range all {
			if name != excluded {
				ans = append(ans, name)
			}
		}
		return ans
	}
	return all
}

// flattenRecords extracts one value per record (features Raw/CODA) or
// one value per sub-segment (feature Segments) for every retained
// annotator, keeping record attribution. A record without a segments
// array reached by a segment-level search is malformed and aborts the
// call with a typed error.
func flattenRecords(
	byAnnotator map[string][]annot.Record,
	annotators []string,
	filter AnnotationsFilter,
) ([]flatValue, error) {
	ans := make([]flatValue, 0)
	for _, annotator := range annotators {
		for i, record := range byAnnotator[annotator] {
			switch filter.Feature {
			case FeatureRaw:
				ans = append(ans, flatValue{annotator, i, record.Raw})
			case FeatureCODA:
				ans = append(ans, flatValue{annotator, i, record.Coda})
			case FeatureSegments:
				if record.Segments == nil {
					return nil, gerror.MalformedRecordError{
						Annotator: annotator,
						Index:     i,
						Reason:    "missing `segments`",
					}
				}
				for _, token := range record.Segments {
					for _, segment := range token {
						ans = append(ans, flatValue{annotator, i, segmentField(segment, filter.Field)})
					}
				}
			}
		}
	}
	return ans, nil
}

func segmentField(segment annot.SubSegment, field Field) string {
	switch field {
	case FieldText:
		return segment.Text
	case FieldVerbForm:
		return segment.VerbForm
	case FieldPOS:
		return segment.POS
	case FieldLemma:
		return segment.Lemma
	}
	return ""
}

// matchAnnotationValue applies the match mode, with the composite
// POS-key rule taking over for POS-field segment searches.
func matchAnnotationValue(query, value string, filter AnnotationsFilter) bool {
	if filter.Feature == FeatureSegments && filter.Field == FieldPOS {
		return matchPos(query, value, filter.Match)
	}
	return matchString(query, value, filter.Match)
}
