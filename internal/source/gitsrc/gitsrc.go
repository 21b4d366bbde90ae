// Package gitsrc provides git-backed content sources: tracked files and
// worktree status, read through go-git so no git binary is required.
// Both register as named sources, making them re-executable by the
// headless wrapper.
package gitsrc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/patnr/gofzf/internal/contents"
)

func init() {
	contents.RegisterSource("git-files", func(_ context.Context, optsJSON string) (contents.ProducerFunc, error) {
		o, err := decodeOpts(optsJSON)
		if err != nil {
			return nil, err
		}
		return Files(o.Cwd), nil
	})
	contents.RegisterSource("git-status", func(_ context.Context, optsJSON string) (contents.ProducerFunc, error) {
		o, err := decodeOpts(optsJSON)
		if err != nil {
			return nil, err
		}
		return Status(o.Cwd), nil
	})
}

type sourceOpts struct {
	Cwd string `json:"cwd"`
}

func decodeOpts(optsJSON string) (sourceOpts, error) {
	var o sourceOpts
	if optsJSON == "" {
		return o, nil
	}
	if err := json.Unmarshal([]byte(optsJSON), &o); err != nil {
		return o, &OptsError{Payload: optsJSON, Cause: err}
	}
	return o, nil
}

// Open resolves the repository containing dir, walking up to the .git
// directory the way the git CLI does.
func Open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &OpenError{Dir: dir, Cause: err}
	}
	return repo, nil
}

// Files yields the paths tracked at HEAD, in tree order.
func Files(dir string) contents.ProducerFunc {
	return func(push func(string) bool) error {
		repo, err := Open(dir)
		if err != nil {
			return err
		}
		head, err := repo.Head()
		if err != nil {
			return &OpenError{Dir: dir, Cause: err}
		}
		commit, err := repo.CommitObject(head.Hash())
		if err != nil {
			return &OpenError{Dir: dir, Cause: err}
		}
		tree, err := commit.Tree()
		if err != nil {
			return &OpenError{Dir: dir, Cause: err}
		}
		return tree.Files().ForEach(func(f *object.File) error {
			if !push(f.Name) {
				return storer.ErrStop
			}
			return nil
		})
	}
}

// Status yields changed worktree entries in porcelain form: the staging
// and worktree status codes followed by the path, sorted by path.
func Status(dir string) contents.ProducerFunc {
	return func(push func(string) bool) error {
		repo, err := Open(dir)
		if err != nil {
			return err
		}
		wt, err := repo.Worktree()
		if err != nil {
			return &OpenError{Dir: dir, Cause: err}
		}
		status, err := wt.Status()
		if err != nil {
			return &OpenError{Dir: dir, Cause: err}
		}

		paths := make([]string, 0, len(status))
		for path, fs := range status {
			if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
				continue
			}
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			fs := status[path]
			line := fmt.Sprintf("%c%c %s", byte(fs.Staging), byte(fs.Worktree), path)
			if !push(line) {
				return nil
			}
		}
		return nil
	}
}
