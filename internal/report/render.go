package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"vouch/internal/model"
)

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, rep *model.VerificationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// RenderText writes a terminal-friendly rendering of the report.
func RenderText(w io.Writer, rep *model.VerificationReport) error {
	fmt.Fprintf(w, "%s (%s)\n", rep.BusinessName, rep.LegalForm.String())
	if rep.RegistrationNumber != "" {
		fmt.Fprintf(w, "Registration: %s\n", rep.RegistrationNumber)
	}
	if rep.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", rep.Address)
	}
	fmt.Fprintf(w, "Industry: %s\n", rep.Industry)
	fmt.Fprintf(w, "Legitimacy score: %d/100\n", rep.LegitimacyScore)
	fmt.Fprintf(w, "Trust score: %d/100\n\n", rep.BusinessPurpose.OverallTrustScore)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Verification Sources")
	tw.AppendHeader(table.Row{"Source", "Status", "Details"})
	for _, src := range rep.Sources {
		tw.AppendRow(table.Row{src.Name, strings.ToUpper(string(src.Status)), src.Details})
	}
	tw.Render()

	tw = table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Trust Factors")
	tw.AppendHeader(table.Row{"Factor", "Score", "Weight", "Details"})
	for _, f := range rep.BusinessPurpose.TrustFactors {
		tw.AppendRow(table.Row{f.Name, f.Score, f.Weight, f.Details})
	}
	tw.Render()

	if len(rep.Compliance.Requirements) > 0 {
		tw = table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetTitle(fmt.Sprintf("Regulatory Compliance (%d/100)", rep.Compliance.OverallScore))
		tw.AppendHeader(table.Row{"Requirement", "Status", "Required"})
		for _, req := range rep.Compliance.Requirements {
			required := ""
			if req.Required {
				required = "yes"
			}
			tw.AppendRow(table.Row{req.Name, req.Status, required})
		}
		tw.Render()
	}

	fmt.Fprintln(w, "\nRisk factors:")
	for _, risk := range rep.RiskFactors {
		fmt.Fprintf(w, "  - %s\n", risk)
	}
	return nil
}
