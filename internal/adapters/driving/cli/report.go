package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

// printMergeReport writes a per-section summary of one merge.
func printMergeReport(cmd *cobra.Command, st styles, r *domain.MergeReport) {
	cmd.Println(st.Title.Render(r.Locator))
	for _, sec := range r.Sections {
		header := "  " + sec.Section
		if sec.Created {
			header += st.Muted.Render(" (created)")
		}
		cmd.Println(header)
		for _, e := range sec.Entries {
			switch e.Status {
			case domain.EntryAdded:
				cmd.Println("    " + st.Added.Render("+ "+e.Key))
			default:
				cmd.Println("    " + st.Exists.Render("= "+e.Key+" (already present)"))
			}
		}
	}

	switch {
	case r.Saved:
		cmd.Printf("  %d added, %d already present\n", r.AddedCount(), r.ExistingCount())
	case r.Changed:
		cmd.Printf("  %d would be added, %d already present\n", r.AddedCount(), r.ExistingCount())
		printDiff(cmd, st, r.Diff)
	default:
		cmd.Println(st.Muted.Render("  up to date"))
	}
}

func printDiff(cmd *cobra.Command, st styles, diff string) {
	if diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			cmd.Println(st.Muted.Render(line))
		case strings.HasPrefix(line, "+"):
			cmd.Println(st.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			cmd.Println(st.DiffDel.Render(line))
		default:
			cmd.Println(line)
		}
	}
}

// printScaffoldReport writes every merged document, generated file and
// warning of a scaffold run.
func printScaffoldReport(cmd *cobra.Command, r *domain.ScaffoldReport) {
	st := stylesFor(cmd.OutOrStdout())
	if r.DryRun {
		cmd.Println(st.Warning.Render("Dry run: nothing was written."))
	}
	for _, doc := range r.Documents {
		printMergeReport(cmd, st, doc)
	}
	if len(r.Files) > 0 {
		verb := "Wrote"
		if r.DryRun {
			verb = "Would write"
		}
		cmd.Println(st.Title.Render(verb + ":"))
		for _, f := range r.Files {
			cmd.Println("  " + f)
		}
	}
	for _, w := range r.Warnings {
		cmd.Println(st.Warning.Render("Warning: " + w))
	}
}
