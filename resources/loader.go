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

package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	dfltGulfFile = "gulf_tag_examples.json"
	dfltMSAFile  = "msa_tag_examples.json"
	dfltCODAFile = "coda_examples.json"
)

// Conf configures where the example dictionaries are read from.
// The directory is typically inside the synced annotation repository
// so the dictionaries refresh along with annotator files.
type Conf struct {
	Dir      string `json:"dir"`
	GulfFile string `json:"gulfFile"`
	MSAFile  string `json:"msaFile"`
	CODAFile string `json:"codaFile"`
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf.Dir == "" {
		return fmt.Errorf("missing `resources.dir`")
	}
	if conf.GulfFile == "" {
		conf.GulfFile = dfltGulfFile
		log.Warn().Str("file", dfltGulfFile).Msg("resources.gulfFile not specified, using default")
	}
	if conf.MSAFile == "" {
		conf.MSAFile = dfltMSAFile
		log.Warn().Str("file", dfltMSAFile).Msg("resources.msaFile not specified, using default")
	}
	if conf.CODAFile == "" {
		conf.CODAFile = dfltCODAFile
		log.Warn().Str("file", dfltCODAFile).Msg("resources.codaFile not specified, using default")
	}
	return nil
}

// loadSection reads one dictionary file into target. An absent file is
// a legitimate initial state (the repo may not carry that resource yet)
// and leaves target untouched. A present but unreadable or unparseable
// file is an error - a corrupt dictionary must not masquerade as an
// empty one.
func loadSection(path string, target any) error {
	if !fs.PathExists(path) {
		log.Warn().Str("file", path).Msg("resource file not found, section will be empty")
		return nil
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resource file %s: %w", path, err)
	}
	if err := sonic.Unmarshal(rawData, target); err != nil {
		return fmt.Errorf("failed to parse resource file %s: %w", path, err)
	}
	return nil
}

// Load reads all three example dictionaries into a fresh Store.
func Load(conf *Conf) (*Store, error) {
	var store Store
	if err := loadSection(filepath.Join(conf.Dir, conf.GulfFile), &store.Gulf); err != nil {
		return nil, err
	}
	if err := loadSection(filepath.Join(conf.Dir, conf.MSAFile), &store.MSA); err != nil {
		return nil, err
	}
	if err := loadSection(filepath.Join(conf.Dir, conf.CODAFile), &store.CODA); err != nil {
		return nil, err
	}
	log.Info().
		Int("numExamples", store.NumExamples()).
		Msg("loaded example dictionaries")
	return &store, nil
}

// Provider hands out the current Store snapshot to request handlers.
// The snapshot itself is never mutated; Reload swaps in a new one
// (typically after the sync collaborator refreshed the files).
type Provider struct {
	conf  *Conf
	mutex sync.RWMutex
	store *Store
}

func NewProvider(conf *Conf) (*Provider, error) {
	store, err := Load(conf)
	if err != nil {
		return nil, err
	}
	return &Provider{conf: conf, store: store}, nil
}

// Get returns the current immutable snapshot. Safe for concurrent use.
func (p *Provider) Get() *Store {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.store
}

// Reload re-reads the dictionaries and atomically replaces the
// snapshot. On error the previous snapshot stays in place.
func (p *Provider) Reload() error {
	store, err := Load(p.conf)
	if err != nil {
		return err
	}
	p.mutex.Lock()
	p.store = store
	p.mutex.Unlock()
	return nil
}
