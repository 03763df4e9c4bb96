package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"

	"firespread/internal/batch"
	"firespread/internal/fire"
)

// WriteSummary prints one aligned row per parameter set.
func WriteSummary(w io.Writer, rows []batch.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SET\tVARIANT\tTRIALS\tSPREAD RATE\tEXTINCTION TIME\tEXTINCT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f ± %.2f\t%.2f ± %.2f\t%.0f%%\n",
			r.Label, r.Params.Variant, r.Trials,
			r.SpreadRate, r.SpreadRateStdDev,
			r.ExtinctionTime, r.ExtinctionTimeStdDev,
			r.ExtinctFraction*100)
	}
	return tw.Flush()
}

// EvolutionFileName names the evolution chart of a set. Labelled sets use the
// label; otherwise the name is built from the parameters.
func EvolutionFileName(label string, p fire.Params) string {
	if label != "" {
		return "evolution_" + slug(label) + ".png"
	}
	dir := fmt.Sprintf("%g_%g", p.Wind.Direction.Row, p.Wind.Direction.Col)
	switch p.Variant {
	case fire.VariantDiffusion:
		return slug(fmt.Sprintf("evolution_diffusion_%g_wind_%s", p.DiffusionRate, dir)) + ".png"
	case fire.VariantVegetation:
		return slug(fmt.Sprintf("evolution_vegetation_%g_wind_%s", p.BaseProbSpread, dir)) + ".png"
	default:
		return slug(fmt.Sprintf("evolution_beta_%g_gamma_%g", p.Beta, p.Gamma)) + ".png"
	}
}

// ComparisonFileName is the name of the metric comparison figure.
const ComparisonFileName = "comparative_metrics.png"

func slug(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(s) {
		ok := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-')
		if !ok {
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			underscore = true
			continue
		}
		b.WriteRune(r)
		underscore = false
	}
	return strings.TrimSuffix(b.String(), "_")
}
