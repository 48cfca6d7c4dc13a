package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"openstruct/internal/calc/importer"
	"openstruct/internal/calc/shear"
	"openstruct/internal/config"
)

const rule = "───────────────────────────────────────────────────────────────"

type shearFlags struct {
	in          shear.Input
	factorsFile string
	file        string
}

func newShearCmd() *cobra.Command {
	f := &shearFlags{in: shear.Input{Factors: shear.DefaultFactors()}}
	cmd := &cobra.Command{
		Use:   "shear",
		Short: "Design the shear reinforcement of a beam",
		Long: `Checks the compressed concrete struts (VRd2), sizes the stirrups
(VRd3) and lists the maximum spacing for every commercial diameter.

Examples:
  # 14x45 cm beam, Vk = 120 kN, C30 concrete, CA-50 two-leg stirrups
  ocalc shear --name V1 --bw 14 --height 45 --vk 120 --fck 30

  # Every beam of a workbook (name, bw, h, Vk, fywk, fck, legs[, gama_c, gama_c2, gama_s])
  ocalc shear --file beams.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShear(cmd.OutOrStdout(), f, cmd.Flags().Changed)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.in.Name, "name", "V1", "beam name")
	fl.Float64Var(&f.in.Bw, "bw", 0, "web width (cm)")
	fl.Float64Var(&f.in.H, "height", 0, "total height (cm)")
	fl.Float64Var(&f.in.Vk, "vk", 0, "characteristic shear force (kN)")
	fl.Float64Var(&f.in.Fck, "fck", 0, "concrete strength fck (MPa)")
	fl.Float64Var(&f.in.Fywk, "fywk", 500, "stirrup steel strength fywk (MPa)")
	fl.IntVar(&f.in.StirrupLegs, "legs", 2, "stirrup legs")
	fl.Float64Var(&f.in.GamaC, "gama-c", f.in.GamaC, "concrete safety factor")
	fl.Float64Var(&f.in.GamaC2, "gama-c2", f.in.GamaC2, "shear force amplification factor")
	fl.Float64Var(&f.in.GamaS, "gama-s", f.in.GamaS, "steel safety factor")
	fl.StringVar(&f.factorsFile, "factors", "", "YAML file with gama_c, gama_c2 and gama_s; explicit --gama-* flags win")
	fl.StringVarP(&f.file, "file", "f", "", "xlsx workbook with one beam per row")
	return cmd
}

// changed reports whether a flag was set on the command line; explicit
// --gama-* flags take precedence over the factors file.
func runShear(out io.Writer, f *shearFlags, changed func(string) bool) error {
	if f.factorsFile != "" {
		factors, err := config.LoadFactors(f.factorsFile, f.in.Factors)
		if err != nil {
			return err
		}
		if changed("gama-c") {
			factors.GamaC = f.in.GamaC
		}
		if changed("gama-c2") {
			factors.GamaC2 = f.in.GamaC2
		}
		if changed("gama-s") {
			factors.GamaS = f.in.GamaS
		}
		f.in.Factors = factors
	}
	if f.file != "" {
		return runShearFile(out, f.file, f.in.Factors)
	}

	res, err := shear.Calculate(f.in)
	if err != nil {
		return err
	}
	printShear(out, res)
	return nil
}

func runShearFile(out io.Writer, path string, factors shear.Factors) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := importer.Shear(file, factors)
	rowErrs := importer.Messages(err)
	if err != nil && rowErrs == nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BEAM\tbw x h (cm)\tVd (kN)\tVRd2 (kN)\tVRd2\tasw (cm²/m)\tSTIRRUPS")
	for _, r := range res.Results {
		fmt.Fprintf(w, "%s\t%.1f x %.1f\t%.2f\t%.2f\t%s\t%.2f\t%s\n",
			r.Name, r.Input.Bw, r.Input.H, r.DesignShearKN, r.Compression.Vrd2,
			r.Compression.Status, r.Tension.AswAdot, r.Tension.Status)
	}
	w.Flush()
	printRowErrors(out, rowErrs)
	return nil
}

func printShear(out io.Writer, r shear.Result) {
	section := func(title string) *tabwriter.Writer {
		fmt.Fprintln(out)
		fmt.Fprintln(out, title)
		fmt.Fprintln(out, rule)
		return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	}

	w := section("BEAM " + r.Input.String())
	fmt.Fprintf(w, "  d:\t%.2f cm\n", r.EffectiveDepthCM)
	fmt.Fprintf(w, "  Vd:\t%.2f kN\n", r.DesignShearKN)
	fmt.Fprintf(w, "  gama_c / gama_c2 / gama_s:\t%.2f / %.2f / %.2f\n", r.Input.GamaC, r.Input.GamaC2, r.Input.GamaS)
	w.Flush()

	w = section("MATERIALS:")
	fmt.Fprintf(w, "  fcd:\t%.2f MPa\n", r.Materials.Fcd)
	fmt.Fprintf(w, "  fywd:\t%.2f MPa\n", r.Materials.Fywd)
	fmt.Fprintf(w, "  fctm:\t%.3f MPa\n", r.Materials.Fctm)
	fmt.Fprintf(w, "  fctk,inf:\t%.3f MPa\n", r.Materials.FctkInf)
	fmt.Fprintf(w, "  fctd:\t%.3f MPa\n", r.Materials.Fctd)
	w.Flush()

	w = section("COMPRESSED STRUTS:")
	fmt.Fprintf(w, "  alpha_v2:\t%.3f\n", r.Compression.AlphaV2)
	fmt.Fprintf(w, "  VRd2:\t%.2f kN\n", r.Compression.Vrd2)
	fmt.Fprintf(w, "  Status:\t%s\n", r.Compression.Status)
	w.Flush()

	w = section("STIRRUPS:")
	fmt.Fprintf(w, "  Vc:\t%.2f kN\n", r.Tension.Vc)
	fmt.Fprintf(w, "  asw,min:\t%.2f cm²/m\n", r.Tension.AswMinM)
	fmt.Fprintf(w, "  VRd3,min:\t%.2f kN\n", r.Tension.Vrd3Min)
	fmt.Fprintf(w, "  asw adopted:\t%.2f cm²/m (%s)\n", r.Tension.AswAdot, r.Tension.Status.Describe())
	w.Flush()

	w = section("MAXIMUM SPACING:")
	fmt.Fprintln(w, "  DIAMETER (mm)\tSPACING (cm)")
	for _, s := range r.Detailing {
		fmt.Fprintf(w, "  %.1f\t%.0f\n", s.DiameterMM, s.SpacingCM)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printRowErrors(out io.Writer, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%d row(s) skipped:\n", len(msgs))
	for _, m := range msgs {
		fmt.Fprintf(out, "  %s\n", m)
	}
}
