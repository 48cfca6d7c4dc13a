package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"openstruct/internal/calc/importer"
	"openstruct/internal/calc/report"
	"openstruct/internal/calc/springs"
)

type springsFlags struct {
	in   springs.Input
	file string
	txt  bool
}

func newSpringsCmd() *cobra.Command {
	f := &springsFlags{}
	cmd := &cobra.Command{
		Use:   "springs",
		Short: "Horizontal spring stiffness of pile supports",
		Long: `Looks up the horizontal reaction modulus m for the soil and SPT and
computes the spring stiffness kmola = m * depth * diameter.

Examples:
  # One support in sand
  ocalc springs --support 1 --depth 2 --diameter 0.4 --soil areia --spt 9

  # Every support of a workbook (support, prof, diametro, soil, spt), as a text report
  ocalc springs --file supports.xlsx --txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSprings(cmd.OutOrStdout(), f, time.Now())
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.in.Support, "support", 1, "support number")
	fl.Float64Var(&f.in.Depth, "depth", 0, "depth (m)")
	fl.Float64Var(&f.in.Diameter, "diameter", 0, "pile diameter (m)")
	fl.StringVar(&f.in.Soil, "soil", "", "soil type: clay/argila or sand/areia")
	fl.IntVar(&f.in.SPT, "spt", 0, "SPT blow count")
	fl.StringVarP(&f.file, "file", "f", "", "xlsx workbook with one support per row")
	fl.BoolVar(&f.txt, "txt", false, "print the fixed-width text report")
	return cmd
}

func runSprings(out io.Writer, f *springsFlags, now time.Time) error {
	var (
		rows    []springs.Result
		rowErrs []string
	)
	if f.file != "" {
		file, err := os.Open(f.file)
		if err != nil {
			return err
		}
		defer file.Close()

		res, err := importer.Springs(file)
		rowErrs = importer.Messages(err)
		if err != nil && rowErrs == nil {
			return err
		}
		rows = res.Results
	} else {
		res, err := springs.Calculate(f.in)
		if err != nil {
			return err
		}
		rows = []springs.Result{res}
	}

	if f.txt {
		fmt.Fprintln(out, report.SpringsText(rows, now))
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SUPPORT\tDEPTH (m)\tAREA (m²)\tSOIL\tSPT\tm (tf/m4)\tkmola (tf/m)")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%.2f\t%.3f\t%s\t%d\t%.2f\t%.2f\n",
				r.Support, r.Depth, r.Area, r.Soil, r.SPT, r.M, r.KSpring)
		}
		w.Flush()
	}
	printRowErrors(out, rowErrs)
	return nil
}
