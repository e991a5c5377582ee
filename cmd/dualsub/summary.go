package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"dualsub/internal/language"
	"dualsub/internal/pipeline"
	"dualsub/internal/subtitles"
)

// renderRunSummary builds the per-language breakdown shown in verbose mode.
func renderRunSummary(result pipeline.Result) string {
	counts := lo.CountValuesBy(result.Segments, func(seg subtitles.Segment) string {
		return seg.Lang
	})
	translated := lo.CountBy(result.Segments, func(seg subtitles.Segment) bool {
		return seg.Translation != nil
	})

	codes := lo.Keys(counts)
	sort.Strings(codes)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Language", "Code", "Cues"})
	for _, code := range codes {
		tw.AppendRow(table.Row{language.DisplayName(code), code, counts[code]})
	}
	tw.AppendFooter(table.Row{"Total", "", len(result.Segments)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteByte('\n')
	if result.AudioDuration > 0 {
		fmt.Fprintf(&b, "Audio duration: %s\n", result.AudioDuration.Round(10*time.Millisecond))
	}
	fmt.Fprintf(&b, "Translated cues: %d/%d\n", translated, len(result.Segments))
	b.WriteString("Outputs:\n")
	for _, path := range result.OutputFiles {
		fmt.Fprintf(&b, "  %s\n", path)
	}
	return strings.TrimRight(b.String(), "\n")
}
