package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/odvcencio/revstore/internal/config"
	"github.com/odvcencio/revstore/pkg/object"
	"github.com/odvcencio/revstore/pkg/repo"
	"github.com/odvcencio/revstore/pkg/revision"
	"github.com/odvcencio/revstore/pkg/storage"
)

func (a *app) repoOptions() ([]repo.Option, error) {
	prefer, err := a.cfg.Precedence()
	if err != nil {
		return nil, err
	}
	return []repo.Option{repo.WithLogger(a.log), repo.WithPrecedence(prefer)}, nil
}

// openKV opens the configured badger directory and schedules it for close.
func (a *app) openKV() (*storage.KV, error) {
	kv, err := storage.OpenKV(a.path(a.cfg.Storage.Path))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, kv.Close)
	return kv, nil
}

// openRepo opens the repository selected by the configured backend.
func (a *app) openRepo() (*repo.Repo, error) {
	opts, err := a.repoOptions()
	if err != nil {
		return nil, err
	}

	switch a.cfg.Storage.Backend {
	case config.BackendBadger:
		kv, err := a.openKV()
		if err != nil {
			return nil, err
		}
		r := repo.New(kv, a.cfg.Repository.Dir, opts...)
		if !kv.Exists(filepath.Join(r.Root, revision.Head)) {
			return nil, fmt.Errorf("open %s: %w", a.cfg.Storage.Path, repo.ErrNotARepository)
		}
		return r, nil
	default:
		return repo.Open(a.dir, a.cfg.Repository.Dir, opts...)
	}
}

// resolve resolves rev, printing a warning and continuing when the name is
// ambiguous.
func (a *app) resolve(r *repo.Repo, rev string, stderr io.Writer) (object.Hash, error) {
	h, err := r.ResolveRevision(rev)
	var amb *repo.AmbiguousRevisionError
	if errors.As(err, &amb) {
		warnAmbiguous(stderr, amb)
		return h, nil
	}
	return h, err
}

func warnAmbiguous(w io.Writer, amb *repo.AmbiguousRevisionError) {
	color.New(color.FgYellow).Fprint(w, "warning: ")
	fmt.Fprintf(w, "refname '%s' is ambiguous, using %s\n", amb.Name, amb.From)
}

func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.dir, p)
}
