package analyzer

import "regexp"

// complexityKeywords 是复杂度估算使用的关键字列表。
var complexityKeywords = []string{
	"if", "for", "while", "switch", "case", "function", "class", "try", "catch",
}

var keywordPatterns = compileKeywordPatterns(complexityKeywords)

var (
	jsFunctionPattern = regexp.MustCompile(`function\s+\w+`)
	jsArrowPattern    = regexp.MustCompile(`=>`)
	pyDefPattern      = regexp.MustCompile(`def\s+\w+`)
	// 访问修饰符 + 可选 static + 返回类型 + 名称 + 括号参数，只能覆盖单行签名。
	cFamilyMethodPattern = regexp.MustCompile(`(?:public|private|protected)?\s*(?:static)?\s*(?:\w+)\s+\w+\(.*\)`)
)

func compileKeywordPatterns(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, keyword := range keywords {
		patterns = append(patterns, regexp.MustCompile(`\b`+keyword+`\b`))
	}
	return patterns
}

// EstimateComplexity 统计关键字在全文中按单词边界出现的次数之和（区分大小写）。
//
// 这是圈复杂度的粗略近似：不区分注释与字符串，
// 出现在注释或字符串中的关键字同样计数。
func EstimateComplexity(content string) int {
	score := 0
	for _, pattern := range keywordPatterns {
		score += len(pattern.FindAllStringIndex(content, -1))
	}
	return score
}

// CountFunctions 按语言族估算函数/方法定义数量，不支持的扩展名返回 0。
//
// 结果是近似值：js/ts 同时计数 `function name` 与每个 `=>`，
// 内联回调较多的代码会明显偏高；C 族按单行签名匹配，
// 会漏掉多行签名，也可能把构造调用误判为定义。
func CountFunctions(content string, ext string) int {
	switch ext {
	case "js", "ts", "jsx", "tsx":
		return countMatches(jsFunctionPattern, content) + countMatches(jsArrowPattern, content)
	case "py":
		return countMatches(pyDefPattern, content)
	case "java", "cpp", "c", "cs":
		return countMatches(cFamilyMethodPattern, content)
	default:
		return 0
	}
}

func countMatches(pattern *regexp.Regexp, content string) int {
	return len(pattern.FindAllStringIndex(content, -1))
}
