package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/foilview/internal/app"
	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

// ANSI color codes for terminal output. Emptied by setColor(false).
var (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// setColor switches ANSI output on or off.
func setColor(on bool) {
	if on {
		colorReset, colorBold, colorCyan = "\033[0m", "\033[1m", "\033[36m"
		colorGreen, colorYellow, colorRed, colorGray = "\033[32m", "\033[33m", "\033[31m", "\033[90m"
		return
	}
	colorReset, colorBold, colorCyan = "", "", ""
	colorGreen, colorYellow, colorRed, colorGray = "", "", "", ""
}

// formatSummary formats the parse summary for one airfoil.
//
//	NACA 0012 AIRFOILS  (lednicer)
//	  file:       naca0012.dat
//	  points:     33 (17 upper, 17 lower)
//	  chord:      1.0000
//	  thickness:  0.1200
//	  leading:    (0.0000, 0.0000)
func formatSummary(path string, a airfoil.Airfoil) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s%s%s  %s(%s)%s\n", colorBold, a.Name(), colorReset, colorGray, a.Format(), colorReset))
	sb.WriteString(fmt.Sprintf("  file:       %s%s%s\n", colorCyan, path, colorReset))
	sb.WriteString(fmt.Sprintf("  points:     %d (%d upper, %d lower)\n", a.NumPoints(), a.NumUpper(), a.NumLower()))
	sb.WriteString(fmt.Sprintf("  chord:      %.4f\n", a.Chord()))
	sb.WriteString(fmt.Sprintf("  thickness:  %.4f\n", a.Thickness()))
	if le, ok := a.LeadingEdge(); ok {
		sb.WriteString(fmt.Sprintf("  leading:    (%.4f, %.4f)\n", le.X, le.Y))
	} else {
		sb.WriteString("  leading:    -\n")
	}
	if a.NumLower() == 0 && a.NumPoints() > 0 {
		sb.WriteString(fmt.Sprintf("  %s! no (0,0) point, lower surface is empty%s\n", colorYellow, colorReset))
	}
	return sb.String()
}

// formatPlotResult formats one line of render/watch output.
func formatPlotResult(r app.PlotResult) string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s✗%s %s: %v", colorRed, colorReset, r.Name, r.Err)
	case r.Removed:
		return fmt.Sprintf("%s-%s %s removed", colorYellow, colorReset, r.Name)
	default:
		return fmt.Sprintf("%s✓%s %s → %s%s%s %s│ %s%s",
			colorGreen, colorReset, r.Name, colorCyan, r.Output, colorReset,
			colorGray, r.Elapsed.Round(time.Millisecond), colorReset)
	}
}

// formatCacheList formats the cache listing.
func formatCacheList(infos []ports.CacheInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s%d cached airfoils%s\n", colorBold, len(infos), colorReset))
	for _, info := range infos {
		variant, path := app.SplitCacheKey(info.Key)
		sb.WriteString(fmt.Sprintf("  %s%s%s  %s  %s[%s, %s, %d points]%s\n",
			colorCyan, path, colorReset, info.Name,
			colorGray, variant, info.Format, info.NumPoints, colorReset))
	}
	return sb.String()
}
