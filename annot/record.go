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

// Package annot defines annotation records and their file-backed,
// per-annotator persistence. One JSON array per annotator, one record
// per source phrase, last writer wins.
package annot

import (
	"fmt"
)

// FlagMarked is the sub-segment flag value the UI writes when an
// annotator marks a segment for later review.
const FlagMarked = "flag"

// SubSegment is one clitic-split fragment of a token together with
// its linguistic annotation.
type SubSegment struct {
	Flag     string `json:"flag"`
	Text     string `json:"text"`
	VerbForm string `json:"verb_form"`
	POS      string `json:"pos"`
	Lemma    string `json:"lemma"`
}

// Token is the ordered sub-segment (clitic) split of one token.
type Token []SubSegment

// Record is one annotator's annotation of one source phrase.
// Original identifies the record - an annotator never holds two
// records with the same Original value.
type Record struct {
	Original string  `json:"original"`
	Raw      string  `json:"raw"`
	Coda     string  `json:"coda,omitempty"`
	Segments []Token `json:"segments"`
}

// Validate checks the invariants a record must satisfy before
// it is persisted.
func (rec *Record) Validate() error {
	if rec.Original == "" {
		return fmt.Errorf("record has empty `original`")
	}
	if rec.Segments == nil {
		return fmt.Errorf("record has no `segments`")
	}
	return nil
}

// IsFlagged tests whether any sub-segment of the record carries
// the review flag.
func (rec *Record) IsFlagged() bool {
	for _, token := range rec.Segments {
		for _, seg := range token {
			if seg.Flag == FlagMarked {
				return true
			}
		}
	}
	return false
}
