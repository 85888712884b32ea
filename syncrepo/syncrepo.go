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

// Package syncrepo exchanges per-annotator annotation files through a
// shared git repository, one branch per annotator. Each annotator only
// ever commits their own `<name>.json`, so the merged view across the
// team is obtained by reading that file from every remote branch - no
// textual merging is needed.
package syncrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gannot/annot"
)

const (
	dfltMainBranch = "main"
	remoteName     = "origin"
)

// Conf configures the shared annotation repository.
type Conf struct {
	RepoDir    string `json:"repoDir"`
	RemoteURL  string `json:"remoteUrl"`
	Username   string `json:"username"`
	Token      string `json:"token"`
	MainBranch string `json:"mainBranch"`
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf.RepoDir == "" {
		return fmt.Errorf("missing `sync.repoDir`")
	}
	if conf.RemoteURL == "" {
		return fmt.Errorf("missing `sync.remoteUrl`")
	}
	if conf.MainBranch == "" {
		conf.MainBranch = dfltMainBranch
		log.Warn().Str("branch", dfltMainBranch).Msg("sync.mainBranch not specified, using default")
	}
	return nil
}

// Repo is the sync collaborator for one annotator.
type Repo struct {
	conf      *Conf
	annotator string
}

func NewRepo(conf *Conf, annotator string) *Repo {
	return &Repo{conf: conf, annotator: annotator}
}

func (r *Repo) auth() *githttp.BasicAuth {
	if r.conf.Username == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: r.conf.Username,
		Password: r.conf.Token,
	}
}

func (r *Repo) branchRef() plumbing.ReferenceName {
	return plumbing.NewBranchReferenceName(r.annotator)
}

func (r *Repo) annotatorFile() string {
	return r.annotator + ".json"
}

// Bootstrap prepares the working copy: clones the shared repository if
// it is not present yet, then creates (or re-checks-out) the branch in
// the annotator's name and registers its upstream. Called once at
// startup; all later operations assume the branch is current.
func (r *Repo) Bootstrap(ctx context.Context) error {
	var repo *git.Repository
	var err error
	if fs.PathExists(filepath.Join(r.conf.RepoDir, ".git")) {
		repo, err = git.PlainOpen(r.conf.RepoDir)
		if err != nil {
			return fmt.Errorf("failed to open annotation repository: %w", err)
		}

	} else {
		log.Info().
			Str("url", r.conf.RemoteURL).
			Str("dir", r.conf.RepoDir).
			Msg("cloning annotation repository")
		repo, err = git.PlainCloneContext(ctx, r.conf.RepoDir, false, &git.CloneOptions{
			URL:  r.conf.RemoteURL,
			Auth: r.auth(),
		})
		if err != nil {
			return fmt.Errorf("failed to clone annotation repository: %w", err)
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to access worktree: %w", err)
	}
	err = wt.Checkout(&git.CheckoutOptions{Branch: r.branchRef()})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		err = wt.Checkout(&git.CheckoutOptions{Branch: r.branchRef(), Create: true})
	}
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", r.annotator, err)
	}

	err = repo.CreateBranch(&gitconfig.Branch{
		Name:   r.annotator,
		Remote: remoteName,
		Merge:  r.branchRef(),
	})
	if err != nil && !errors.Is(err, git.ErrBranchExists) {
		return fmt.Errorf("failed to set upstream for branch %s: %w", r.annotator, err)
	}
	log.Info().Str("branch", r.annotator).Msg("annotation repository ready")
	return nil
}

// Publish stages the annotator's own file, commits it and pushes the
// annotator branch. A clean worktree skips the commit but still pushes
// (the remote may be behind). Each sync operation carries a uuid so
// commits can be correlated with request logs.
func (r *Repo) Publish(ctx context.Context) error {
	opID := uuid.New().String()
	repo, err := git.PlainOpen(r.conf.RepoDir)
	if err != nil {
		return fmt.Errorf("failed to open annotation repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to access worktree: %w", err)
	}
	if _, err := wt.Add(r.annotatorFile()); err != nil {
		return fmt.Errorf("failed to stage %s: %w", r.annotatorFile(), err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("failed to read worktree status: %w", err)
	}
	if status.IsClean() {
		log.Debug().Str("opId", opID).Msg("nothing to commit, pushing current state")

	} else {
		_, err = wt.Commit(
			fmt.Sprintf("annotation sync %s", opID),
			&git.CommitOptions{
				Author: &object.Signature{
					Name: r.annotator,
					When: time.Now(),
				},
			},
		)
		if err != nil {
			return fmt.Errorf("failed to commit annotations: %w", err)
		}
	}
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		Auth:       r.auth(),
		RefSpecs: []gitconfig.RefSpec{
			gitconfig.RefSpec(fmt.Sprintf("%s:%s", r.branchRef(), r.branchRef())),
		},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push branch %s: %w", r.annotator, err)
	}
	log.Info().Str("opId", opID).Str("branch", r.annotator).Msg("published annotations")
	return nil
}

// Fetch refreshes all remote branches.
func (r *Repo) Fetch(ctx context.Context) error {
	repo, err := git.PlainOpen(r.conf.RepoDir)
	if err != nil {
		return fmt.Errorf("failed to open annotation repository: %w", err)
	}
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		Auth:       r.auth(),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch remote branches: %w", err)
	}
	return nil
}

// Merged collects every annotator's records from the last fetched
// state of their remote branch. The repository not being cloned yet is
// the legitimate empty state. A branch whose annotation file is absent
// or unparseable contributes an empty list with a warning - an
// annotator with a freshly created branch has no file yet.
func (r *Repo) Merged() (map[string][]annot.Record, error) {
	ans := make(map[string][]annot.Record)
	repo, err := git.PlainOpen(r.conf.RepoDir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return ans, nil

	} else if err != nil {
		return nil, fmt.Errorf("failed to open annotation repository: %w", err)
	}

	refs, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	prefix := fmt.Sprintf("refs/remotes/%s/", remoteName)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		annotator := strings.TrimPrefix(name, prefix)
		if annotator == r.conf.MainBranch || annotator == "HEAD" {
			return nil
		}
		ans[annotator] = r.branchRecords(repo, ref, annotator)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ans, nil
}

func (r *Repo) branchRecords(repo *git.Repository, ref *plumbing.Reference, annotator string) []annot.Record {
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		log.Warn().Err(err).Str("branch", annotator).Msg("failed to resolve branch head, skipping")
		return []annot.Record{}
	}
	tree, err := commit.Tree()
	if err != nil {
		log.Warn().Err(err).Str("branch", annotator).Msg("failed to read branch tree, skipping")
		return []annot.Record{}
	}
	file, err := tree.File(annotator + ".json")
	if err != nil {
		// a freshly set-up branch has no annotation file yet
		return []annot.Record{}
	}
	contents, err := file.Contents()
	if err != nil {
		log.Warn().Err(err).Str("branch", annotator).Msg("failed to read annotation file, skipping")
		return []annot.Record{}
	}
	var records []annot.Record
	if err := sonic.Unmarshal([]byte(contents), &records); err != nil {
		log.Warn().Err(err).Str("branch", annotator).Msg("corrupt annotation file on branch, skipping")
		return []annot.Record{}
	}
	return records
}
