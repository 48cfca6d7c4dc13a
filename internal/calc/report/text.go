package report

import (
	"fmt"
	"strings"
	"time"

	"openstruct/internal/calc/springs"
)

const rule = 80

// SpringsText renders the fixed-width spring table used for plain-text export.
func SpringsText(rows []springs.Result, now time.Time) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s", strings.Repeat("=", rule))
	line("HORIZONTAL PILE SPRINGS REPORT (k_mola)")
	line("Date/Time: %s", now.Format("02/01/2006 15:04:05"))
	line("%s", strings.Repeat("=", rule))
	line("")
	line("%-10s%-12s%-12s%-12s%-8s%-12s%-12s", "Support", "Depth(m)", "Area(m²)", "Soil", "SPT", "m(tf/m4)", "kmola(tf/m)")
	line("%s", strings.Repeat("-", rule))
	for _, r := range rows {
		line("%-10d%-12.2f%-12.3f%-12s%-8d%-12.2f%-12.2f", r.Support, r.Depth, r.Area, r.Soil, r.SPT, r.M, r.KSpring)
	}
	line("")
	line("%s", strings.Repeat("=", rule))
	line("Total supports: %d", len(rows))
	b.WriteString(strings.Repeat("=", rule))
	return b.String()
}
