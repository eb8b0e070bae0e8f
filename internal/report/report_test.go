package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codestats/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(value int) *int {
	return &value
}

func sampleRecords() []model.FileRecord {
	return []model.FileRecord{
		{Path: "small.go", Language: "Go", TotalLines: 60, BlankLines: 10, CodeLines: 50, Density: 83.3, Complexity: 2},
		{Path: "big.py", Language: "Python", TotalLines: 130, BlankLines: 20, CommentLines: 10, CodeLines: 100, Density: 76.9, Complexity: 7,
			Functions: intPtr(4), AvgFunctionLength: intPtr(25)},
		{Path: "empty.js", Language: "JavaScript", Functions: intPtr(0)},
	}
}

var fixedTime = time.Date(2026, 10, 18, 8, 30, 0, 0, time.UTC)

func TestAggregateTotals(t *testing.T) {
	scanReport := Aggregate("/repo", sampleRecords(), fixedTime)

	assert.Equal(t, "2026-10-18T08:30:00Z", scanReport.Timestamp)
	assert.Equal(t, "/repo", scanReport.Directory)
	assert.Equal(t, 190, scanReport.Totals.TotalLines)
	assert.Equal(t, 10, scanReport.Totals.TotalComments)
	assert.Equal(t, 150, scanReport.Totals.TotalCode)
	assert.Equal(t, 78.9, scanReport.Totals.AvgDensity)
	assert.Len(t, scanReport.Files, 3)
}

// TestAggregateEmpty 验证空集合的总计全部为 0 且不会除零。
func TestAggregateEmpty(t *testing.T) {
	scanReport := Aggregate("/repo", nil, fixedTime)

	assert.Equal(t, model.Totals{}, scanReport.Totals)
	assert.NotNil(t, scanReport.Files)
	assert.Empty(t, scanReport.Files)
}

// TestSaveAndLoadRoundTrip 验证报告写入后读回的总计与文件列表一致（保持顺序）。
func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	scanReport := Aggregate(dir, sampleRecords(), fixedTime)

	path, err := Save(scanReport)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "code-stats", "report.json"), path)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, scanReport, loaded)
}

// TestSaveOverwrites 验证重复写入直接覆盖旧报告。
func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()

	_, err := Save(Aggregate(dir, sampleRecords(), fixedTime))
	require.NoError(t, err)
	path, err := Save(Aggregate(dir, nil, fixedTime))
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Files)
	assert.Equal(t, 0.0, loaded.Totals.AvgDensity)
}

// TestSaveJSONShape 验证持久化字段名以及可选字段的省略规则。
func TestSaveJSONShape(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(Aggregate(dir, sampleRecords(), fixedTime))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "\n  \"totals\": {"), "report should be pretty printed")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(content, &raw))
	assert.ElementsMatch(t, []string{"timestamp", "directory", "totals", "files"}, keys(raw))

	totals := raw["totals"].(map[string]any)
	assert.ElementsMatch(t, []string{"totalLines", "totalComments", "totalCode", "avgDensity"}, keys(totals))

	files := raw["files"].([]any)
	require.Len(t, files, 3)

	small := files[0].(map[string]any)
	assert.NotContains(t, small, "functions")
	assert.NotContains(t, small, "avgFunctionLength")

	big := files[1].(map[string]any)
	assert.Equal(t, 4.0, big["functions"])
	assert.Equal(t, 25.0, big["avgFunctionLength"])

	empty := files[2].(map[string]any)
	assert.Equal(t, 0.0, empty["functions"])
	assert.NotContains(t, empty, "avgFunctionLength")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

// TestLargest 验证按代码行降序取前 N 个且不修改输入。
func TestLargest(t *testing.T) {
	records := sampleRecords()

	top := Largest(records, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "big.py", top[0].Path)

	all := Largest(records, 10)
	assert.Equal(t, []string{"big.py", "small.go", "empty.js"}, []string{all[0].Path, all[1].Path, all[2].Path})
	assert.Equal(t, "small.go", records[0].Path)

	assert.Nil(t, Largest(records, 0))
	assert.Nil(t, Largest(nil, 5))
}

// TestSummarize 验证平均值是按文件的算术平均。
func TestSummarize(t *testing.T) {
	summary := Summarize(sampleRecords())

	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 190, summary.TotalLines)
	assert.Equal(t, 150, summary.TotalCode)
	assert.Equal(t, 10, summary.TotalComments)
	assert.Equal(t, 53.4, summary.AvgDensity)
	assert.Equal(t, 3.0, summary.AvgComplexity)

	assert.Equal(t, model.Summary{}, Summarize(nil))
}

// TestPrintTables 验证三个表格的标题与关键内容。
func TestPrintTables(t *testing.T) {
	var buf bytes.Buffer
	result := model.ScanResult{
		Files:  sampleRecords(),
		Errors: []model.ScanError{{Path: "bad.bin", Error: "binary or non-UTF-8 content"}},
	}

	require.NoError(t, PrintTables(&buf, result, TableOptions{Largest: 1}))
	output := buf.String()

	assert.Contains(t, output, "Top 1 Largest Files")
	assert.Contains(t, output, "File Analysis Summary")
	assert.Contains(t, output, "Project Summary")
	assert.Contains(t, output, "Skipped Paths")
	assert.Contains(t, output, "big.py")
	assert.Contains(t, output, "off")
	assert.Contains(t, output, "53.4%")
	assert.Contains(t, output, "bad.bin")
	assert.NotContains(t, output, "\x1b[")
}

// TestPrintTablesEmpty 验证没有文件时输出提示而不是空表。
func TestPrintTablesEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTables(&buf, model.ScanResult{}, TableOptions{Largest: 5}))
	assert.Contains(t, buf.String(), "No files found matching criteria.")
	assert.NotContains(t, buf.String(), "Project Summary")
}

// TestPrintTablesLimitsRows 验证文件明细表最多展示 20 行。
func TestPrintTablesLimitsRows(t *testing.T) {
	records := make([]model.FileRecord, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, model.FileRecord{Path: filepath.Join("src", "file_"+string(rune('a'+i))+".go")})
	}

	var buf bytes.Buffer
	require.NoError(t, PrintTables(&buf, model.ScanResult{Files: records}, TableOptions{}))

	output := buf.String()
	assert.Contains(t, output, "file_t.go")
	assert.NotContains(t, output, "file_u.go")
	assert.NotContains(t, output, "Largest Files")
}

func TestDisplayPath(t *testing.T) {
	base := t.TempDir()

	assert.Equal(t, "a/b.go", displayPath(filepath.Join(base, "a", "b.go"), base))
	assert.Equal(t, "x.go", displayPath("x.go", ""))
}

func keys(values map[string]any) []string {
	result := make([]string, 0, len(values))
	for key := range values {
		result = append(result, key)
	}
	return result
}
