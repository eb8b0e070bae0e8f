package analyzer

import "strings"

// SplitLines 按 \n 或 \r\n 切分文本。
// 末尾换行不会额外产生一个空行，空文本返回 0 行。
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// IsBlank 判断去掉首尾空白后是否为空。
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment 按扩展名族判断单行是否为注释。
// 每行独立判断，不跟踪跨行的块注释状态；未知扩展名一律返回 false。
func IsComment(line string, ext string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	switch ext {
	case "js", "ts", "jsx", "tsx", "java", "cpp", "c", "cs", "go", "swift", "kt", "rs":
		// "*/" 已被 "*" 覆盖。
		return strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") ||
			strings.HasPrefix(trimmed, "*")
	case "py", "sh", "rb", "env", "ini", "toml", "yml", "yaml":
		return strings.HasPrefix(trimmed, "#")
	case "html", "xml":
		return strings.HasPrefix(trimmed, "<!--")
	default:
		return false
	}
}

// lineCounts 是单文件的行分类结果，三类互斥。
type lineCounts struct {
	total   int
	blank   int
	comment int
	code    int
}

// classifyLines 将每行归入 blank、comment、code 三类之一。
// countComments 为 false 时注释行计入 code。
func classifyLines(lines []string, ext string, countComments bool) lineCounts {
	counts := lineCounts{total: len(lines)}

	for _, line := range lines {
		switch {
		case IsBlank(line):
			counts.blank++
		case countComments && IsComment(line, ext):
			counts.comment++
		default:
			counts.code++
		}
	}
	return counts
}
