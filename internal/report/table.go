package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"codestats/internal/model"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// SummaryRows 是 File Analysis Summary 表格展示的最大行数。
const SummaryRows = 20

// TableOptions 控制控制台表格的内容与样式。
type TableOptions struct {
	// Largest 为 0 时不输出最大文件表。
	Largest       int
	CountComments bool
	Colored       bool
	// BaseDir 非空时文件路径显示为相对该目录的路径。
	BaseDir string
}

// PrintTables 依次输出最大文件表、文件明细表、项目汇总表以及跳过的文件。
func PrintTables(w io.Writer, result model.ScanResult, opts TableOptions) error {
	if len(result.Files) == 0 {
		if _, err := fmt.Fprintln(w, paint(opts.Colored, "No files found matching criteria.", color.FgYellow)); err != nil {
			return err
		}
		return printErrors(w, result.Errors, opts)
	}

	if opts.Largest > 0 {
		if err := printLargest(w, result.Files, opts); err != nil {
			return err
		}
	}
	if err := printFiles(w, result.Files, opts); err != nil {
		return err
	}
	if err := printSummary(w, Summarize(result.Files), opts); err != nil {
		return err
	}
	return printErrors(w, result.Errors, opts)
}

func printLargest(w io.Writer, records []model.FileRecord, opts TableOptions) error {
	rows := make([][]string, 0, opts.Largest)
	for i, record := range Largest(records, opts.Largest) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			paint(opts.Colored, displayPath(record.Path, opts.BaseDir), color.FgHiBlack),
			paint(opts.Colored, strconv.Itoa(record.CodeLines), color.FgBlue),
		})
	}

	title := fmt.Sprintf("Top %d Largest Files", opts.Largest)
	return renderTable(w, title, []string{"#", "File", "Code Lines"}, rows, opts.Colored)
}

func printFiles(w io.Writer, records []model.FileRecord, opts TableOptions) error {
	limit := min(len(records), SummaryRows)
	rows := make([][]string, 0, limit)

	for _, record := range records[:limit] {
		comments := paint(opts.Colored, "off", color.FgHiBlack)
		if opts.CountComments {
			comments = paint(opts.Colored, strconv.Itoa(record.CommentLines), color.FgMagenta)
		}

		rows = append(rows, []string{
			paint(opts.Colored, displayPath(record.Path, opts.BaseDir), color.FgHiBlack),
			record.Language,
			strconv.Itoa(record.TotalLines),
			paint(opts.Colored, strconv.Itoa(record.CodeLines), color.FgCyan),
			comments,
			paint(opts.Colored, strconv.Itoa(record.Complexity), color.FgYellow),
			optionalInt(record.Functions),
			optionalInt(record.AvgFunctionLength),
		})
	}

	headers := []string{"File", "Lang", "Lines", "Code", "Comments", "Complexity", "Functions", "Avg Func Len"}
	return renderTable(w, "File Analysis Summary", headers, rows, opts.Colored)
}

func printSummary(w io.Writer, summary model.Summary, opts TableOptions) error {
	comments := paint(opts.Colored, "off", color.FgHiBlack)
	if opts.CountComments {
		comments = paint(opts.Colored, strconv.Itoa(summary.TotalComments), color.FgMagenta)
	}

	rows := [][]string{
		{"Total Lines", strconv.Itoa(summary.TotalLines)},
		{"Total Code", paint(opts.Colored, strconv.Itoa(summary.TotalCode), color.FgCyan)},
		{"Total Comments", comments},
		{"Average Density", paint(opts.Colored, fmt.Sprintf("%.1f%%", summary.AvgDensity), color.FgYellow)},
		{"Average Complexity", paint(opts.Colored, fmt.Sprintf("%.1f", summary.AvgComplexity), color.FgRed)},
	}
	return renderTable(w, "Project Summary", []string{"Metric", "Value"}, rows, opts.Colored)
}

func printErrors(w io.Writer, errors []model.ScanError, opts TableOptions) error {
	if len(errors) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(errors))
	for _, item := range errors {
		rows = append(rows, []string{displayPath(item.Path, opts.BaseDir), item.Error})
	}
	return renderTable(w, "Skipped Paths", []string{"Error File", "Message"}, rows, opts.Colored)
}

// renderTable 输出带标题的无边框表格。
func renderTable(w io.Writer, title string, headers []string, rows [][]string, colored bool) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", paint(colored, title, color.FgGreen, color.Bold)); err != nil {
		return err
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// paint 在开启颜色时为文本着色。
func paint(colored bool, text string, attrs ...color.Attribute) string {
	if !colored {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

func optionalInt(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

// displayPath 尽量显示相对 base 的路径，失败时保留原路径。
func displayPath(path string, base string) string {
	if base == "" {
		return path
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
