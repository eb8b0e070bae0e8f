// Package report 提供 codestats 的汇总与输出能力。
// 包括持久化 JSON 报告、最大文件视图、项目汇总以及控制台表格。
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"codestats/internal/analyzer"
	"codestats/internal/model"
)

const (
	// DirName 是报告目录名，位于被扫描目录之下。
	DirName = "code-stats"
	// FileName 是报告文件名。
	FileName = "report.json"
)

// Path 返回目录对应的报告文件路径。
func Path(directory string) string {
	return filepath.Join(directory, DirName, FileName)
}

// Aggregate 汇总全部记录，生成持久化报告模型。
// AvgDensity 为总代码行占总行数的百分比（一位小数），分母至少为 1。
func Aggregate(directory string, records []model.FileRecord, now time.Time) model.ScanReport {
	var totals model.Totals
	for _, record := range records {
		totals.TotalLines += record.TotalLines
		totals.TotalComments += record.CommentLines
		totals.TotalCode += record.CodeLines
	}
	totals.AvgDensity = analyzer.Round1(float64(totals.TotalCode) / float64(max(totals.TotalLines, 1)) * 100)

	files := records
	if files == nil {
		files = make([]model.FileRecord, 0)
	}

	return model.ScanReport{
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Directory: directory,
		Totals:    totals,
		Files:     files,
	}
}

// Save 将报告写入 <directory>/code-stats/report.json，目录不存在会自动创建，
// 已有文件直接覆盖。返回写入的路径。
func Save(scanReport model.ScanReport) (string, error) {
	content, err := json.MarshalIndent(scanReport, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	path := Path(scanReport.Directory)
	if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
		return "", fmt.Errorf("create report directory: %w", mkErr)
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return "", fmt.Errorf("write report file: %w", writeErr)
	}
	return path, nil
}

// Load 读取已保存的报告。
func Load(path string) (model.ScanReport, error) {
	var scanReport model.ScanReport

	content, err := os.ReadFile(path)
	if err != nil {
		return scanReport, fmt.Errorf("read report file: %w", err)
	}
	if err := json.Unmarshal(content, &scanReport); err != nil {
		return scanReport, fmt.Errorf("unmarshal json: %w", err)
	}
	return scanReport, nil
}

// Largest 按代码行降序返回前 n 个记录，代码行相同时保持原顺序。
// 不修改输入切片。
func Largest(records []model.FileRecord, n int) []model.FileRecord {
	if n <= 0 || len(records) == 0 {
		return nil
	}

	sorted := append([]model.FileRecord(nil), records...)
	sort.SliceStable(sorted, func(i int, j int) bool {
		return sorted[i].CodeLines > sorted[j].CodeLines
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Summarize 计算控制台汇总值。
// 平均密度与平均复杂度为全部记录的算术平均（一位小数），空集合时为 0。
func Summarize(records []model.FileRecord) model.Summary {
	summary := model.Summary{Files: len(records)}

	var densitySum float64
	var complexitySum int
	for _, record := range records {
		summary.TotalLines += record.TotalLines
		summary.TotalCode += record.CodeLines
		summary.TotalComments += record.CommentLines
		densitySum += record.Density
		complexitySum += record.Complexity
	}

	count := float64(max(len(records), 1))
	summary.AvgDensity = analyzer.Round1(densitySum / count)
	summary.AvgComplexity = analyzer.Round1(float64(complexitySum) / count)
	return summary
}
