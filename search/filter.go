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
	"fmt"
	"strings"

	"gannot/gerror"
	"gannot/resources"
)

// MatchMode selects substring containment vs. equality.
type MatchMode string

const (
	MatchApproximate MatchMode = "Approximate"
	MatchExact       MatchMode = "Exact"
)

func (m MatchMode) Validate() error {
	if m != MatchApproximate && m != MatchExact {
		return fmt.Errorf("unknown match mode: %s", m)
	}
	return nil
}

// matchString applies the mode to a single field value.
func matchString(query, value string, mode MatchMode) bool {
	if mode == MatchExact {
		return query == value
	}
	return strings.Contains(value, query)
}

// ResourceKind selects the example dictionary to search. The values
// are the UI drop-down labels - they arrive from forms as-is.
type ResourceKind string

const (
	ResourceGulfTags     ResourceKind = "Gulf Tags"
	ResourceMSATags      ResourceKind = "MSA Tags"
	ResourceCODAExamples ResourceKind = "CODA Examples"
)

func (rk ResourceKind) Validate() error {
	if rk != ResourceGulfTags && rk != ResourceMSATags && rk != ResourceCODAExamples {
		return fmt.Errorf("unknown resource: %s", rk)
	}
	return nil
}

// ExamplesFilter is the fixed-arity filter tuple of the example
// search: (segment type, match mode, resource).
type ExamplesFilter struct {
	SegmentType string
	Match       MatchMode
	Resource    ResourceKind
}

// NewExamplesFilter builds a filter from the raw tuple values.
// A wrong arity or an unknown enum value is a caller contract
// violation and fails fast.
func NewExamplesFilter(items ...string) (ExamplesFilter, error) {
	if len(items) != 3 {
		return ExamplesFilter{}, gerror.InputError{
			Msg: fmt.Sprintf("examples filter must have 3 items, got %d", len(items))}
	}
	ans := ExamplesFilter{
		SegmentType: items[0],
		Match:       MatchMode(items[1]),
		Resource:    ResourceKind(items[2]),
	}
	return ans, ans.Validate()
}

func (f ExamplesFilter) Validate() error {
	if err := f.segmentType().Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	if err := f.Match.Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	if err := f.Resource.Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	return nil
}

// segmentType maps the UI label (`Baseword`, ...) to the store's
// lower-case group key.
func (f ExamplesFilter) segmentType() resources.SegmentType {
	return resources.SegmentType(strings.ToLower(f.SegmentType))
}

// ---------------------------

// Feature selects which part of an annotation record the
// previous-annotation search inspects.
type Feature string

const (
	FeatureRaw      Feature = "Raw"
	FeatureCODA     Feature = "CODA"
	FeatureSegments Feature = "Segments"
)

func (f Feature) Validate() error {
	if f != FeatureRaw && f != FeatureCODA && f != FeatureSegments {
		return fmt.Errorf("unknown feature: %s", f)
	}
	return nil
}

// Field selects the sub-segment attribute inspected by
// segment-level searches.
type Field string

const (
	FieldText     Field = "Text"
	FieldVerbForm Field = "Verb Form"
	FieldPOS      Field = "POS"
	FieldLemma    Field = "Lemma"
)

func (f Field) Validate() error {
	if f != FieldText && f != FieldVerbForm && f != FieldPOS && f != FieldLemma {
		return fmt.Errorf("unknown field: %s", f)
	}
	return nil
}

// AllButPrefix marks an annotator selector excluding one annotator
// from the otherwise complete set.
const AllButPrefix = "All But "

// AnnotationsFilter is the fixed-arity filter tuple of the
// previous-annotation search: (feature, field, match mode, annotator
// selector). The annotator position is not an enum - a specific name
// narrows the search, an `All But <name>` phrase excludes one name
// and anything else leaves the full annotator set in place.
type AnnotationsFilter struct {
	Feature   Feature
	Field     Field
	Match     MatchMode
	Annotator string
}

func NewAnnotationsFilter(items ...string) (AnnotationsFilter, error) {
	if len(items) != 4 {
		return AnnotationsFilter{}, gerror.InputError{
			Msg: fmt.Sprintf("annotations filter must have 4 items, got %d", len(items))}
	}
	ans := AnnotationsFilter{
		Feature:   Feature(items[0]),
		Field:     Field(items[1]),
		Match:     MatchMode(items[2]),
		Annotator: items[3],
	}
	return ans, ans.Validate()
}

func (f AnnotationsFilter) Validate() error {
	if err := f.Feature.Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	if err := f.Field.Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	if err := f.Match.Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	return nil
}
