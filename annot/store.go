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

package annot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"

	"gannot/gerror"
)

// Conf configures the annotation store location. Dir is normally the
// working tree of the synced repository, so each annotator file is
// also a tracked file.
type Conf struct {
	Dir         string `json:"dir"`
	PhrasesFile string `json:"phrasesFile"`
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf.Dir == "" {
		return fmt.Errorf("missing `annotations.dir`")
	}
	if conf.PhrasesFile == "" {
		conf.PhrasesFile = "phrases.txt"
		log.Warn().Str("file", conf.PhrasesFile).Msg("annotations.phrasesFile not specified, using default")
	}
	return nil
}

// Store reads and writes per-annotator record files. Writes are
// serialized process-wide; concurrent editing across processes is left
// to the version control sync (last writer wins, as documented).
type Store struct {
	conf  *Conf
	mutex sync.Mutex
}

func NewStore(conf *Conf) *Store {
	return &Store{conf: conf}
}

func (s *Store) annotatorPath(name string) string {
	return filepath.Join(s.conf.Dir, name+".json")
}

// LoadAnnotator returns all records of the named annotator. An absent
// file is the legitimate initial state and yields an empty list; a
// present but unparseable file is reported as an internal error
// rather than silently treated as empty.
func (s *Store) LoadAnnotator(name string) ([]Record, error) {
	path := s.annotatorPath(name)
	if !fs.PathExists(path) {
		return []Record{}, nil
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, gerror.InternalError{
			Msg: fmt.Sprintf("failed to read annotation file %s: %s", path, err)}
	}
	var records []Record
	if err := sonic.Unmarshal(rawData, &records); err != nil {
		return nil, gerror.InternalError{
			Msg: fmt.Sprintf("failed to parse annotation file %s: %s", path, err)}
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Store) writeAnnotator(name string, records []Record) error {
	rawData, err := sonic.Marshal(records)
	if err != nil {
		return gerror.InternalError{
			Msg: fmt.Sprintf("failed to serialize annotations of %s: %s", name, err)}
	}
	if err := os.WriteFile(s.annotatorPath(name), rawData, 0644); err != nil {
		return gerror.InternalError{
			Msg: fmt.Sprintf("failed to write annotation file of %s: %s", name, err)}
	}
	return nil
}

// Save stores a record using the replace-or-append policy: an existing
// record with the same `original` is replaced (keeping its stored
// `raw`, which the UI never edits), otherwise the record is appended.
// This enforces the one-record-per-original invariant on every write.
func (s *Store) Save(name string, rec Record) error {
	if err := rec.Validate(); err != nil {
		return gerror.InputError{Msg: err.Error()}
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.LoadAnnotator(name)
	if err != nil {
		return err
	}
	replaced := false
	for i, prev := range records {
		if prev.Original == rec.Original {
			rec.Raw = prev.Raw
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	log.Debug().
		Str("annotator", name).
		Str("original", rec.Original).
		Bool("replaced", replaced).
		Msg("storing annotation record")
	return s.writeAnnotator(name, records)
}

// Get returns the record for the given phrase, or ok=false.
func (s *Store) Get(name, original string) (Record, bool, error) {
	records, err := s.LoadAnnotator(name)
	if err != nil {
		return Record{}, false, err
	}
	for _, rec := range records {
		if rec.Original == original {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

// IsAnnotated tests whether the annotator already has a record
// for the phrase.
func (s *Store) IsAnnotated(name, original string) (bool, error) {
	_, ok, err := s.Get(name, original)
	return ok, err
}

// Flagged lists originals of records carrying a review flag,
// in file order, each at most once.
func (s *Store) Flagged(name string) ([]string, error) {
	records, err := s.LoadAnnotator(name)
	if err != nil {
		return nil, err
	}
	ans := make([]string, 0, len(records))
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.IsFlagged() && !seen[rec.Original] {
			ans = append(ans, rec.Original)
			seen[rec.Original] = true
		}
	}
	return ans, nil
}

// Phrases reads the source phrase list, one phrase per line.
func (s *Store) Phrases() ([]string, error) {
	path := filepath.Join(s.conf.Dir, s.conf.PhrasesFile)
	if !fs.PathExists(path) {
		return []string{}, nil
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, gerror.InternalError{
			Msg: fmt.Sprintf("failed to read phrases file %s: %s", path, err)}
	}
	lines := strings.Split(string(rawData), "\n")
	ans := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			ans = append(ans, line)
		}
	}
	return ans, nil
}
