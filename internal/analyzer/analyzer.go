// Package analyzer 提供单文件分析能力：行分类、复杂度估算、函数计数，
// 以及把这些启发式结果组装为 model.FileRecord 的 FileAnalyzer。
//
// 所有判定均基于逐行/正则启发式，不做词法或语法解析。
package analyzer

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"codestats/internal/config"
	"codestats/internal/languages"
	"codestats/internal/model"

	"github.com/h2non/filetype"
)

// ErrBinaryContent 表示文件不是可解码的文本（二进制或非 UTF-8）。
var ErrBinaryContent = errors.New("binary or non-UTF-8 content")

// sniffLength 是二进制类型探测读取的头部字节数。
const sniffLength = 262

// FileAnalyzer 负责单个文件的完整分析流程。
// 不持有可变状态，可被多个 worker 并发调用。
type FileAnalyzer struct {
	classifier *languages.Classifier
}

// New 创建文件分析器。
func New(classifier *languages.Classifier) *FileAnalyzer {
	if classifier == nil {
		classifier = languages.NewClassifier()
	}
	return &FileAnalyzer{classifier: classifier}
}

// Analyze 分析单个文件。
// 返回 (nil, nil) 表示文件被语言过滤排除；读取或解码失败返回错误，由上层记录后跳过。
func (a *FileAnalyzer) Analyze(path string, cfg config.ScanConfig) (*model.FileRecord, error) {
	ext, base := languages.Split(path)

	if allowed := cfg.LanguageSet(); allowed != nil {
		_, extOK := allowed[ext]
		_, baseOK := allowed[base]
		if !extOK && !baseOK {
			return nil, nil
		}
	}

	content, err := readText(path)
	if err != nil {
		return nil, err
	}

	record := Measure(content, ext, cfg)
	record.Path = path
	record.Language = a.classifier.LabelForFile(path)
	return &record, nil
}

// Measure 对已读取的文本计算全部指标，不填充 Path 与 Language。
func Measure(content string, ext string, cfg config.ScanConfig) model.FileRecord {
	counts := classifyLines(SplitLines(content), ext, cfg.CountComments)

	record := model.FileRecord{
		TotalLines:   counts.total,
		BlankLines:   counts.blank,
		CommentLines: counts.comment,
		CodeLines:    counts.code,
		Density:      Density(counts.code, counts.total),
		Complexity:   EstimateComplexity(content),
	}

	if cfg.FunctionCount {
		functions := CountFunctions(content, ext)
		record.Functions = &functions

		if cfg.AvgFuncLength && functions > 0 {
			avg := int(math.Round(float64(counts.code) / float64(functions)))
			record.AvgFunctionLength = &avg
		}
	}

	return record
}

// Density 返回代码行占比的百分数，保留一位小数；total 为 0 时返回 0。
func Density(code int, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(code) / float64(total) * 100)
}

// Round1 四舍五入到一位小数。
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// readText 读取文件并确认其为 UTF-8 文本。
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	if bytes.IndexByte(data, 0) < 0 && utf8.Valid(data) {
		return string(data), nil
	}

	// 非文本内容才做类型识别，用于错误信息。
	head := data
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		return "", fmt.Errorf("%w: detected %s", ErrBinaryContent, kind.MIME.Value)
	}
	return "", ErrBinaryContent
}
