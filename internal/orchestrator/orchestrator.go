// Package orchestrator sequences one cleanup run: measure, decide, quiesce
// the owning service, execute the deletion plan, re-measure, resume the
// service. Every transition is recorded in the audit log.
//
// Error policy: degrade, don't abort. Service and filesystem failures are
// logged and the run advances to its next state, so a partial deletion
// failure can never leave the service stopped. The one exception is an
// audit-log write failure, which halts the run immediately — an
// unauditable cleanup is worse than no cleanup.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/lakshaymaurya-felt/storetrim/internal/cleanup"
	"github.com/lakshaymaurya-felt/storetrim/internal/config"
	"github.com/lakshaymaurya-felt/storetrim/internal/probe"
	"github.com/lakshaymaurya-felt/storetrim/internal/service"
	"github.com/lakshaymaurya-felt/storetrim/internal/sizefmt"
)

// State is a phase of the run's state machine.
type State int

const (
	StateIdle State = iota
	StateMeasuring
	StateBelowThreshold
	StateAboveThreshold
	StateStoppingService
	StateCleaningUp
	StateRemeasuring
	StateStartingService
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMeasuring:
		return "measuring"
	case StateBelowThreshold:
		return "below threshold"
	case StateAboveThreshold:
		return "above threshold"
	case StateStoppingService:
		return "stopping service"
	case StateCleaningUp:
		return "cleaning up"
	case StateRemeasuring:
		return "remeasuring"
	case StateStartingService:
		return "starting service"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProbeFunc measures a directory tree's total size.
type ProbeFunc func(ctx context.Context, path string) (int64, error)

// ServiceController is the slice of the service package the run needs.
type ServiceController interface {
	Status(ctx context.Context, name string) (service.Status, error)
	Stop(ctx context.Context, name string, timeout time.Duration) (bool, error)
	Start(ctx context.Context, name string, timeout time.Duration) (bool, error)
}

// Plan is the deletion plan interface, satisfied by *cleanup.Plan.
type Plan interface {
	Steps() []cleanup.Step
	Run(ctx context.Context, step cleanup.Step) cleanup.StepResult
	DryRun() bool
}

// AuditLog is the append-only run record, satisfied by *auditlog.Logger.
type AuditLog interface {
	Append(message string) error
	Appendf(format string, args ...any) error
}

// Report summarizes one run for console display. The audit log, not this
// struct, is the authoritative record.
type Report struct {
	State          State
	PreSize        int64
	PostSize       int64
	PostSizeValid  bool
	CleanupRan     bool
	PathMissing    bool
	StopConfirmed  bool
	StartConfirmed bool
	Steps          []cleanup.StepResult
}

// Orchestrator drives a single run. Construct one per run; it holds no
// state between runs.
type Orchestrator struct {
	cfg   config.RunConfig
	probe ProbeFunc
	svc   ServiceController
	plan  Plan
	log   AuditLog
}

// New wires a run from its collaborators.
func New(cfg config.RunConfig, probeFn ProbeFunc, svc ServiceController, plan Plan, log AuditLog) *Orchestrator {
	return &Orchestrator{cfg: cfg, probe: probeFn, svc: svc, plan: plan, log: log}
}

// Run executes the state machine to completion. The returned error is
// non-nil only for a fatal audit-log failure; everything else is recorded
// in the log and the report, and the run still reaches StateDone.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	r := &Report{State: StateMeasuring}
	threshold := o.cfg.ThresholdBytes()

	if err := o.log.Appendf("run started: datastore %s, threshold %s, service %s",
		o.cfg.Datastore, sizefmt.Format(threshold), o.cfg.ServiceName); err != nil {
		return r, err
	}

	pre, err := o.probe(ctx, o.cfg.Datastore)
	if err != nil {
		r.State = StateDone
		r.PathMissing = errors.Is(err, probe.ErrPathNotFound)
		if logErr := o.log.Appendf("size measurement failed: %v; run ends without touching the service", err); logErr != nil {
			return r, logErr
		}
		return r, nil
	}
	r.PreSize = pre

	if err := o.log.Appendf("datastore size: %s (%d bytes)", sizefmt.Format(pre), pre); err != nil {
		return r, err
	}

	if pre <= threshold {
		r.State = StateDone
		if err := o.log.Append("size within threshold, no cleanup required"); err != nil {
			return r, err
		}
		return r, nil
	}

	r.State = StateAboveThreshold
	r.CleanupRan = true
	if err := o.log.Append("size exceeds threshold, beginning cleanup"); err != nil {
		return r, err
	}

	if err := o.stopService(ctx, r); err != nil {
		return r, err
	}
	if err := o.runPlan(ctx, r); err != nil {
		return r, err
	}
	if err := o.remeasure(ctx, r); err != nil {
		return r, err
	}
	if err := o.startService(ctx, r); err != nil {
		return r, err
	}

	r.State = StateDone
	if err := o.log.Append("run complete"); err != nil {
		return r, err
	}
	return r, nil
}

func (o *Orchestrator) stopService(ctx context.Context, r *Report) error {
	r.State = StateStoppingService

	if o.plan.DryRun() {
		return o.log.Append("dry run: service left untouched")
	}

	st, err := o.svc.Status(ctx, o.cfg.ServiceName)
	switch {
	case err != nil:
		// An unrecognized name is reportable, not fatal: treat the
		// service as not running and carry on.
		if logErr := o.log.Appendf("service query failed: %v; treating service as not running", err); logErr != nil {
			return logErr
		}
		return nil
	case st == service.StatusStopped:
		r.StopConfirmed = true
		return o.log.Appendf("service %s already stopped", o.cfg.ServiceName)
	}

	if err := o.log.Appendf("service %s is %s, requesting stop", o.cfg.ServiceName, st); err != nil {
		return err
	}

	reached, err := o.svc.Stop(ctx, o.cfg.ServiceName, o.cfg.StopTimeout)
	switch {
	case err != nil:
		return o.log.Appendf("service stop failed: %v; continuing with cleanup", err)
	case !reached:
		// The stop request was issued; an unconfirmed stop does not
		// block the deletion steps (locked files surface as per-step
		// failures instead).
		return o.log.Appendf("service did not confirm stop within %s; continuing with cleanup", o.cfg.StopTimeout)
	default:
		r.StopConfirmed = true
		return o.log.Appendf("service %s stopped", o.cfg.ServiceName)
	}
}

func (o *Orchestrator) runPlan(ctx context.Context, r *Report) error {
	r.State = StateCleaningUp

	suffix := ""
	if o.plan.DryRun() {
		suffix = " (dry run)"
	}
	if err := o.log.Appendf("cleanup started: %d steps%s", len(o.plan.Steps()), suffix); err != nil {
		return err
	}

	for _, step := range o.plan.Steps() {
		res := o.plan.Run(ctx, step)
		r.Steps = append(r.Steps, res)

		switch res.Outcome {
		case cleanup.OutcomeMissing:
			if err := o.log.Appendf("step %s: target does not exist, skipping", step.Name); err != nil {
				return err
			}
		case cleanup.OutcomeNothing:
			if err := o.log.Appendf("step %s: nothing to clean", step.Name); err != nil {
				return err
			}
		default:
			if err := o.log.Appendf("step %s: removed %d items, %d failures%s",
				step.Name, res.Removed, len(res.Errors), suffix); err != nil {
				return err
			}
		}

		for _, stepErr := range res.Errors {
			if err := o.log.Appendf("step %s: %v", step.Name, stepErr); err != nil {
				return err
			}
		}
	}

	return nil
}

func (o *Orchestrator) remeasure(ctx context.Context, r *Report) error {
	r.State = StateRemeasuring

	post, err := o.probe(ctx, o.cfg.Datastore)
	if err != nil {
		return o.log.Appendf("post-cleanup measurement failed: %v", err)
	}

	r.PostSize = post
	r.PostSizeValid = true
	return o.log.Appendf("datastore size after cleanup: %s (%d bytes)", sizefmt.Format(post), post)
}

func (o *Orchestrator) startService(ctx context.Context, r *Report) error {
	r.State = StateStartingService

	if o.plan.DryRun() {
		return nil
	}

	// Attempted exactly once per above-threshold run, no matter how many
	// steps failed: the service must not stay down over a partial cleanup.
	reached, err := o.svc.Start(ctx, o.cfg.ServiceName, o.cfg.StartTimeout)
	switch {
	case err != nil:
		return o.log.Appendf("service start failed: %v", err)
	case !reached:
		return o.log.Appendf("service did not confirm start within %s", o.cfg.StartTimeout)
	default:
		r.StartConfirmed = true
		return o.log.Appendf("service %s started", o.cfg.ServiceName)
	}
}
