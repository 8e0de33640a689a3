// Shared helpers for firstwords commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/firstwords/internal/corpus"
	"github.com/mesh-intelligence/firstwords/internal/export"
	"github.com/mesh-intelligence/firstwords/internal/render"
	"github.com/mesh-intelligence/firstwords/internal/tracker"
	"github.com/mesh-intelligence/firstwords/internal/vocab"
	"github.com/mesh-intelligence/firstwords/pkg/sqlite"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// sysError marks a failure of the environment (storage, filesystem) rather
// than of the user's input. It maps to exitSysError.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// errCorpusMissing reports a configured corpus.path that does not exist.
var errCorpusMissing = errors.New("corpus file not found")

// userErrors are the failures caused by what the user asked for.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrValidation,
	types.ErrDateFormat,
	types.ErrInvalidName,
	types.ErrDuplicateName,
	types.ErrNotRegistered,
	types.ErrAlreadyPresent,
	export.ErrNoWords,
	corpus.ErrMissingColumn,
	corpus.ErrInvalidAge,
	errCorpusMissing,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// exitCode maps an error returned by a command to the process exit code.
// Errors that are neither known user errors nor marked as system errors
// come from argument and flag parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if isUserError(err) {
		return exitUserError
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// session describes what a command needs from the store.
type session struct {
	// caregiver requires a registered caregiver before the command runs.
	caregiver bool
	// corpus loads the reference corpus into the tracker.
	corpus bool
}

// withTracker attaches the storage backend, builds a tracker and runs fn.
// The backend is detached before returning. Errors from fn that are not
// user errors are reported as system errors.
func (a *app) withTracker(s session, fn func(tr *tracker.Tracker) error) (err error) {
	var ref *vocab.Corpus
	if s.corpus {
		ref, err = a.loadCorpus()
		if err != nil {
			return err
		}
	}

	cupboard := sqlite.NewBackend(a.logger)
	if err := cupboard.Attach(a.backendConfig()); err != nil {
		return systemError("attach backend: %w", err)
	}
	defer func() {
		if derr := cupboard.Detach(); derr != nil && err == nil {
			err = systemError("detach backend: %w", derr)
		}
	}()

	tr := tracker.New(cupboard, ref, a.logger)
	if s.caregiver {
		if _, err := tr.CurrentCaregiver(); err != nil {
			if errors.Is(err, types.ErrNotRegistered) {
				return fmt.Errorf("%w: run 'firstwords register --name NAME' first", err)
			}
			return &sysError{err: err}
		}
	}

	if err := fn(tr); err != nil {
		if isUserError(err) {
			return err
		}
		var se *sysError
		if errors.As(err, &se) {
			return err
		}
		return &sysError{err: err}
	}
	return nil
}

// loadCorpus reads the configured corpus, or the built-in one when no path
// is set.
func (a *app) loadCorpus() (*vocab.Corpus, error) {
	var (
		records []types.TypicalWord
		err     error
	)
	if a.cfg.Corpus.Path == "" {
		records, err = corpus.Default()
	} else {
		records, err = corpus.LoadFile(a.cfg.Corpus.Path)
	}
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %w", errCorpusMissing, err)
	case isUserError(err):
		return nil, fmt.Errorf("load corpus: %w", err)
	default:
		return nil, systemError("load corpus: %w", err)
	}
	if a.cfg.Corpus.SortByAge {
		corpus.SortByAge(records)
	}
	ref := vocab.NewCorpus(records)
	a.logger.Debug("corpus loaded", "words", ref.Len(), "path", a.cfg.Corpus.Path, "sort_by_age", a.cfg.Corpus.SortByAge)
	return ref, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError("marshal output: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return systemError("write output: %w", err)
	}
	return nil
}

// output writes v as JSON in --json mode, or the text produced by text
// otherwise.
func (a *app) output(cmd *cobra.Command, v any, text func(r *render.Renderer) string) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return printJSON(w, v)
	}
	if _, err := io.WriteString(w, text(render.New(w))); err != nil {
		return systemError("write output: %w", err)
	}
	return nil
}
