package ui

import (
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/storetrim/internal/cleanup"
	"github.com/lakshaymaurya-felt/storetrim/internal/orchestrator"
	"github.com/lakshaymaurya-felt/storetrim/internal/sizefmt"
)

// RenderSummary renders the after-run console card. The audit log remains
// the authoritative record; this is the operator's at-a-glance view.
func RenderSummary(r *orchestrator.Report, dryRun bool) string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Cleanup run summary"))
	s.WriteString("\n")
	s.WriteString(MutedStyle.Render(strings.Repeat("─", 40)))
	s.WriteString("\n")

	if r.PathMissing {
		s.WriteString(BadStyle.Render("  datastore path not found — nothing done"))
		s.WriteString("\n")
		return s.String()
	}

	fmt.Fprintf(&s, "  size before   %s\n", sizefmt.Format(r.PreSize))

	if !r.CleanupRan {
		s.WriteString(GoodStyle.Render("  within threshold — no cleanup required"))
		s.WriteString("\n")
		return s.String()
	}

	if r.PostSizeValid {
		fmt.Fprintf(&s, "  size after    %s\n", sizefmt.Format(r.PostSize))
		freed := r.PreSize - r.PostSize
		if freed > 0 && !dryRun {
			fmt.Fprintf(&s, "  reclaimed     %s\n", GoodStyle.Render(sizefmt.Format(freed)))
		}
	}

	s.WriteString("\n")
	for _, step := range r.Steps {
		var line string
		switch step.Outcome {
		case cleanup.OutcomeCleaned:
			verb := "removed"
			if dryRun {
				verb = "would remove"
			}
			line = GoodStyle.Render(fmt.Sprintf("  ✓ %-18s %s %d items", step.Step.Name, verb, step.Removed))
		case cleanup.OutcomePartial:
			line = WarnStyle.Render(fmt.Sprintf("  ! %-18s removed %d items, %d failures",
				step.Step.Name, step.Removed, len(step.Errors)))
		default:
			line = MutedStyle.Render(fmt.Sprintf("  - %-18s %s", step.Step.Name, step.Outcome))
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	switch {
	case dryRun:
		s.WriteString(MutedStyle.Render("  dry run — service untouched, nothing deleted"))
	case r.StartConfirmed:
		s.WriteString(GoodStyle.Render("  service running again"))
	default:
		s.WriteString(WarnStyle.Render("  service start unconfirmed — check the audit log"))
	}
	s.WriteString("\n")

	return s.String()
}
