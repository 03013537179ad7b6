package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/multivar/pkg/domain"
	"github.com/aretw0/multivar/pkg/service"
)

// Decimals is the precision used for numbers in reports.
const Decimals = 4

// maxRows caps the sample tables of surface and contour reports.
const maxRows = 12

// Report renders an operation result as markdown.
// Unknown result types fall back to a JSON code block.
func Report(op string, result any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", op)

	switch r := result.(type) {
	case service.ValueResponse:
		fmt.Fprintf(&b, "**value** = `%s`\n", num(r.Value))
	case service.GradientResponse:
		fmt.Fprintf(&b, "**∇f** = `%s`\n\n**|∇f|** = `%s`\n", vec(r.Gradient), num(r.Magnitude))
	case service.DirectionalResponse:
		fmt.Fprintf(&b, "**D_u f** = `%s`\n\n", num(r.Value))
		fmt.Fprintf(&b, "- ∇f = `%s`\n- u = `%s`\n", vec(r.Gradient), vec(r.Direction))
	case service.NormalizeResponse:
		fmt.Fprintf(&b, "**unit** = `%s`\n\n**|v|** = `%s`\n", vec(r.Unit), num(r.Magnitude))
	case service.LimitResponse:
		writeLimit(&b, r)
	case service.ConservativeResponse:
		writeConservative(&b, r)
	case service.ClassifyResponse:
		fmt.Fprintf(&b, "**verdict**: %s\n\n", r.Verdict)
		b.WriteString("| f | fxx | fyy | fxy | D |\n|---|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", num(r.Value), num(r.Fxx), num(r.Fyy), num(r.Fxy), num(r.Determinant))
	case service.SurfaceResponse:
		writeSurface(&b, r)
	case service.ContoursResponse:
		writeContours(&b, r)
	case service.LagrangeResponse:
		writeLagrange(&b, r)
	default:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(&b, "_unrenderable result: %v_\n", err)
			break
		}
		fmt.Fprintf(&b, "```json\n%s\n```\n", data)
	}
	return b.String()
}

func writeLimit(b *strings.Builder, r service.LimitResponse) {
	b.WriteString("| path | estimate | samples |\n|---|---|---|\n")
	for _, p := range r.Paths {
		estimate := "no limit"
		if p.Exists {
			estimate = num(p.Estimate)
		}
		fmt.Fprintf(b, "| %s | %s | %d |\n", p.Path, estimate, len(p.Samples))
	}
	if r.Agree {
		b.WriteString("\nPaths **agree**: the limit probably exists.\n")
	} else {
		b.WriteString("\nPaths **disagree**: the limit does not exist or could not be estimated.\n")
	}
}

func writeConservative(b *strings.Builder, r service.ConservativeResponse) {
	fmt.Fprintf(b, "**conservative**: %t (%d/%d points)\n\n", r.Conservative, r.Matches, len(r.Checks))
	b.WriteString("| at | ∂P/∂y | ∂Q/∂x | match |\n|---|---|---|---|\n")
	for _, c := range r.Checks {
		fmt.Fprintf(b, "| %s | %s | %s | %t |\n", c.At, num(c.DPdy), num(c.DQdx), c.Match)
	}
	if r.Potential != "" {
		fmt.Fprintf(b, "\nPotential: `%s`\n", r.Potential)
	}
}

func writeSurface(b *strings.Builder, r service.SurfaceResponse) {
	fmt.Fprintf(b, "%d finite points on x ∈ [%s], y ∈ [%s], resolution %d\n\n", len(r.Points), r.X, r.Y, r.Resolution)
	if len(r.Points) == 0 {
		return
	}
	b.WriteString("| x | y | z |\n|---|---|---|\n")
	for i, p := range r.Points {
		if i == maxRows {
			fmt.Fprintf(b, "\n_%d more points omitted_\n", len(r.Points)-maxRows)
			break
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n", flt(p.X), flt(p.Y), flt(p.Z))
	}
}

func writeContours(b *strings.Builder, r service.ContoursResponse) {
	fmt.Fprintf(b, "%d levels with points on x ∈ [%s], y ∈ [%s], resolution %d\n\n", len(r.Levels), r.X, r.Y, r.Resolution)
	if len(r.Levels) == 0 {
		return
	}
	b.WriteString("| level | points |\n|---|---|\n")
	for _, l := range r.Levels {
		fmt.Fprintf(b, "| %s | %d |\n", flt(l.Level), len(l.Points))
	}
}

func writeLagrange(b *strings.Builder, r service.LagrangeResponse) {
	fmt.Fprintf(b, "**satisfied**: %t\n\n", r.Satisfied)
	fmt.Fprintf(b, "- ∇f = `%s`\n- ∇g = `%s`\n", vec(r.GradF), vec(r.GradG))
	fmt.Fprintf(b, "- f = `%s`\n- g = `%s` (on constraint: %t)\n", num(r.Value), num(r.Constraint), r.OnConstraint)
	fmt.Fprintf(b, "- residual = `%s`\n", num(r.Residual))
}

func flt(v float64) string { return domain.FormatNumber(v, Decimals) }

func num(n domain.Number) string { return flt(n.Float64()) }

func vec(v service.Vector) string {
	if v.Z == nil {
		return fmt.Sprintf("(%s, %s)", num(v.X), num(v.Y))
	}
	return fmt.Sprintf("(%s, %s, %s)", num(v.X), num(v.Y), num(*v.Z))
}
