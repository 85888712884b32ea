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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"gannot/annot"
	"gannot/rcache"
	"gannot/resources"
	"gannot/syncrepo"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltTimeZone               = "Europe/Prague"
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string           `json:"listenAddress"`
	PublicURL              string           `json:"publicUrl"`
	ListenPort             int              `json:"listenPort"`
	ServerReadTimeoutSecs  int              `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int              `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string         `json:"corsAllowedOrigins"`
	AuthHeaderName         string           `json:"authHeaderName"`
	AuthTokens             []string         `json:"authTokens"`
	LogFile                string           `json:"logFile"`
	LogLevel               logging.LogLevel `json:"logLevel"`
	TimeZone               string           `json:"timeZone"`
	Annotator              string           `json:"annotator"`
	Annotators             []string         `json:"annotators"`
	Resources              *resources.Conf  `json:"resources"`
	Annotations            *annot.Conf      `json:"annotations"`
	Sync                   *syncrepo.Conf   `json:"sync"`
	Redis                  *rcache.Conf     `json:"redis"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as ValidateAndDefaults reports it
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ValidateAndDefaults(conf *Conf) {
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s", conf.ListenAddress)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.Annotator == "" {
		log.Fatal().Msg("missing `annotator` - the name this instance annotates under")
		return
	}
	if !collections.SliceContains(conf.Annotators, conf.Annotator) {
		conf.Annotators = append(conf.Annotators, conf.Annotator)
		log.Warn().
			Str("annotator", conf.Annotator).
			Msg("`annotator` missing in `annotators` - adding")
	}
	if conf.Sync == nil {
		log.Fatal().Msg("missing `sync` configuration")
		return
	}
	if err := conf.Sync.ValidateAndDefaults(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
		return
	}
	if conf.Annotations == nil {
		conf.Annotations = &annot.Conf{}
	}
	if conf.Annotations.Dir == "" {
		conf.Annotations.Dir = conf.Sync.RepoDir
		log.Warn().
			Str("dir", conf.Annotations.Dir).
			Msg("annotations.dir not specified, using sync.repoDir")
	}
	if err := conf.Annotations.ValidateAndDefaults(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
		return
	}
	if conf.Resources == nil {
		conf.Resources = &resources.Conf{}
	}
	if conf.Resources.Dir == "" {
		conf.Resources.Dir = conf.Sync.RepoDir
		log.Warn().
			Str("dir", conf.Resources.Dir).
			Msg("resources.dir not specified, using sync.repoDir")
	}
	if err := conf.Resources.ValidateAndDefaults(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
		return
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		log.Fatal().Err(err).Msg("invalid time zone")
	}
}
