package steps

import (
	"fmt"
	"strings"

	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/pkg/models"
)

// ReportBuilder renders the warning shown before a blocked submission.
type ReportBuilder struct{}

// NewReportBuilder creates a new report builder step
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

func (s *ReportBuilder) Name() string {
	return "report"
}

func (s *ReportBuilder) Run(ctx *core.Context) error {
	ctx.Result.Report = BuildReport(ctx.Result)
	return nil
}

// BuildReport formats similar defects as a markdown table.
// It returns an empty string when nothing was found.
func BuildReport(result *core.CheckResult) string {
	if len(result.Similar) == 0 {
		return ""
	}

	dup := make(map[string]bool, len(result.Duplicates))
	for _, d := range result.Duplicates {
		dup[key(d)] = true
	}

	var b strings.Builder
	b.WriteString("## Possible duplicate defects\n\n")
	fmt.Fprintf(&b, "Found %d similar defect(s)", len(result.Similar))
	if len(result.Duplicates) > 0 {
		fmt.Fprintf(&b, ", %d likely duplicate(s)", len(result.Duplicates))
	}
	b.WriteString(". Please review them before submitting.\n\n")

	b.WriteString("| ID | Project | Status | Summary | |\n")
	b.WriteString("|----|---------|--------|---------|---|\n")
	for _, d := range result.Similar {
		flag := ""
		if dup[key(d)] {
			flag = "duplicate"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell(d.ID), cell(d.ProjectID), cell(string(d.Status)), cell(d.Summary), flag)
	}

	return b.String()
}

func key(d models.Defect) string {
	return d.ProjectID + "#" + d.ID
}

// cell makes text safe for a single markdown table cell
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	if len([]rune(s)) > 80 {
		s = string([]rune(s)[:77]) + "..."
	}
	return s
}
