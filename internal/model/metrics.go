// Package model 定义 codestats 的核心数据模型。
// 这些结构会被扫描器、分析器、报告层和命令层共同使用。
package model

// FileRecord 表示单文件分析结果，创建后不再修改。
//
// 注意：
// - CodeLines = TotalLines - BlankLines - CommentLines
// - 未开启注释统计时 CommentLines 恒为 0
// - Functions 仅在开启函数统计时存在
// - AvgFunctionLength 仅在开启平均函数长度且 Functions > 0 时存在
type FileRecord struct {
	Path              string  `json:"path"`
	Language          string  `json:"language"`
	TotalLines        int     `json:"totalLines"`
	BlankLines        int     `json:"blankLines"`
	CommentLines      int     `json:"commentLines"`
	CodeLines         int     `json:"codeLines"`
	Density           float64 `json:"density"`
	Complexity        int     `json:"complexity"`
	Functions         *int    `json:"functions,omitempty"`
	AvgFunctionLength *int    `json:"avgFunctionLength,omitempty"`
}

// ScanError 记录单文件或子目录扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ScanResult 是一次扫描的完整产物。
// Files 保持遍历顺序，Errors 按路径排序。
type ScanResult struct {
	ScannedPath string       `json:"scanned_path"`
	Files       []FileRecord `json:"files"`
	Errors      []ScanError  `json:"errors"`
}

// Totals 表示持久化报告中的项目级总计。
type Totals struct {
	TotalLines    int     `json:"totalLines"`
	TotalComments int     `json:"totalComments"`
	TotalCode     int     `json:"totalCode"`
	AvgDensity    float64 `json:"avgDensity"`
}

// ScanReport 是写入 code-stats/report.json 的报告模型。
type ScanReport struct {
	Timestamp string       `json:"timestamp"`
	Directory string       `json:"directory"`
	Totals    Totals       `json:"totals"`
	Files     []FileRecord `json:"files"`
}

// Summary 是控制台 Project Summary 使用的汇总值。
// AvgDensity 与 AvgComplexity 为全部记录的算术平均，不按文件大小加权。
type Summary struct {
	Files         int
	TotalLines    int
	TotalCode     int
	TotalComments int
	AvgDensity    float64
	AvgComplexity float64
}
