// Package cleanup defines and executes the ordered deletion plan over the
// reclaimable subpaths of the datastore.
package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// logSubdirs are the named children of the Logs directory whose contents
// accumulate between runs and are safe to reclaim.
var logSubdirs = []string{"Archive", "Diagnostics", "Sessions"}

// Step is one deletion unit. Every step wipes the immediate contents of
// Path; a step with a non-empty Keep preserves the one immediate child of
// that name (case-insensitive, Windows filename semantics).
type Step struct {
	Name string
	Path string
	Keep string
}

// Outcome classifies how a step ended.
type Outcome int

const (
	// OutcomeCleaned: every removable child was deleted.
	OutcomeCleaned Outcome = iota
	// OutcomeMissing: the target directory does not exist. Not an error.
	OutcomeMissing
	// OutcomeNothing: the target exists but has no removable children.
	OutcomeNothing
	// OutcomePartial: some children could not be removed; the rest were.
	OutcomePartial
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleaned:
		return "cleaned"
	case OutcomeMissing:
		return "does not exist"
	case OutcomeNothing:
		return "nothing to clean"
	case OutcomePartial:
		return "partially cleaned"
	default:
		return "unknown"
	}
}

// StepResult is the audit record of one executed step.
type StepResult struct {
	Step    Step
	Outcome Outcome
	Removed int
	Errors  []error
}

// Plan is the ordered set of deletion steps for one datastore. Steps are
// independent: a failing step never blocks the ones after it.
type Plan struct {
	steps  []Step
	dryRun bool
}

// NewPlan builds the fixed plan for the datastore rooted at store:
// the Coverage Files subtree, the named Logs subdirectories, and the
// Projects directory minus the keep exclusion.
func NewPlan(store, keep string, dryRun bool) *Plan {
	steps := []Step{
		{Name: "Coverage Files", Path: filepath.Join(store, "Coverage Files")},
	}
	for _, sub := range logSubdirs {
		steps = append(steps, Step{
			Name: "Logs/" + sub,
			Path: filepath.Join(store, "Logs", sub),
		})
	}
	steps = append(steps, Step{
		Name: "Projects",
		Path: filepath.Join(store, "Projects"),
		Keep: keep,
	})

	return &Plan{steps: steps, dryRun: dryRun}
}

// Steps returns the plan's steps in execution order.
func (p *Plan) Steps() []Step {
	return p.steps
}

// DryRun reports whether Run previews instead of deleting.
func (p *Plan) DryRun() bool {
	return p.dryRun
}

// Run executes one step. Per-child failures (locked files, permissions)
// are collected in the result, never propagated: the caller logs them and
// moves on so a stuck file cannot leave the service stopped forever.
func (p *Plan) Run(ctx context.Context, step Step) StepResult {
	res := StepResult{Step: step}

	if err := ctx.Err(); err != nil {
		res.Errors = append(res.Errors, err)
		res.Outcome = OutcomePartial
		return res
	}

	info, err := os.Lstat(step.Path)
	if err != nil || !info.IsDir() {
		res.Outcome = OutcomeMissing
		return res
	}

	entries, err := os.ReadDir(step.Path)
	if err != nil {
		res.Outcome = OutcomePartial
		res.Errors = append(res.Errors, fmt.Errorf("read %s: %w", step.Path, err))
		return res
	}

	var removable []string
	for _, e := range entries {
		if step.Keep != "" && strings.EqualFold(e.Name(), step.Keep) {
			continue
		}
		removable = append(removable, e.Name())
	}

	if len(removable) == 0 {
		res.Outcome = OutcomeNothing
		return res
	}

	for _, name := range removable {
		if p.dryRun {
			res.Removed++
			continue
		}
		if err := os.RemoveAll(filepath.Join(step.Path, name)); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("remove %s: %w", name, err))
			continue
		}
		res.Removed++
	}

	if len(res.Errors) > 0 {
		res.Outcome = OutcomePartial
	} else {
		res.Outcome = OutcomeCleaned
	}
	return res
}
