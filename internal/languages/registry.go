// Package languages 维护扩展名、文件名到语言名称的静态映射，
// 供分析器与扫描器共享。
package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

// Unknown 是无法识别时返回的语言名称。
const Unknown = "Unknown"

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name       string
	Extensions []string
	Basenames  []string
}

// Classifier 管理扩展名/文件名到语言名称的静态映射，
// 以及 only-code / only-config 过滤所用的扩展名集合。
// 构造后只读，可在多个 goroutine 间共享。
type Classifier struct {
	byExtension map[string]string
	byBasename  map[string]string
	code        map[string]struct{}
	config      map[string]struct{}
}

// extensionLabels 为扩展名（小写、无点号）到语言名称的映射。
var extensionLabels = map[string]string{
	"js":     "JavaScript",
	"mjs":    "JavaScript",
	"cjs":    "JavaScript",
	"jsx":    "JavaScript (JSX)",
	"ts":     "TypeScript",
	"tsx":    "TypeScript (TSX)",
	"py":     "Python",
	"java":   "Java",
	"c":      "C",
	"h":      "C Header",
	"cpp":    "C++",
	"cc":     "C++",
	"hpp":    "C++ Header",
	"cs":     "C#",
	"go":     "Go",
	"rs":     "Rust",
	"swift":  "Swift",
	"kt":     "Kotlin",
	"kts":    "Kotlin Script",
	"scala":  "Scala",
	"dart":   "Dart",
	"rb":     "Ruby",
	"php":    "PHP",
	"lua":    "Lua",
	"pl":     "Perl",
	"r":      "R",
	"sql":    "SQL",
	"vue":    "Vue",
	"svelte": "Svelte",
	"html":   "HTML",
	"htm":    "HTML",
	"css":    "CSS",
	"scss":   "SCSS",
	"less":   "Less",
	"xml":    "XML",
	"json":   "JSON",
	"yaml":   "YAML",
	"yml":    "YAML",
	"toml":   "TOML",
	"ini":    "INI",
	"env":    "Environment",
	"plist":  "Property List",
	"gradle": "Gradle",
	"md":     "Markdown",
	"txt":    "Text",
	"sh":     "Shell",
	"bash":   "Shell",
	"zsh":    "Shell",
	"ps1":    "PowerShell",
	"bat":    "Batch",
}

// basenameLabels 覆盖没有扩展名的常见配置文件。
var basenameLabels = map[string]string{
	"makefile":      "Makefile",
	"dockerfile":    "Dockerfile",
	"jenkinsfile":   "Groovy",
	"gemfile":       "Ruby",
	"rakefile":      "Ruby",
	"procfile":      "Procfile",
	".env":          "Environment",
	".gitignore":    "Git Ignore",
	".dockerignore": "Docker Ignore",
	".editorconfig": "EditorConfig",
	".npmrc":        "INI",
	".codestatsrc":  "JSON",
}

// codeExtensions 是 only-code 过滤使用的编程语言扩展名集合。
var codeExtensions = []string{
	"js", "ts", "jsx", "tsx", "py", "java", "cpp", "c", "cs", "go", "swift", "kt", "rs",
}

// configExtensions 是 only-config 过滤使用的配置文件扩展名集合。
// makefile 只会匹配形如 x.makefile 的文件，基础名为 Makefile 的文件没有扩展名。
var configExtensions = []string{
	"env", "ini", "toml", "yml", "yaml", "json", "xml", "plist", "gradle", "makefile",
}

// NewClassifier 创建内置映射表。
func NewClassifier() *Classifier {
	classifier := &Classifier{
		byExtension: make(map[string]string, len(extensionLabels)),
		byBasename:  make(map[string]string, len(basenameLabels)),
		code:        make(map[string]struct{}, len(codeExtensions)),
		config:      make(map[string]struct{}, len(configExtensions)),
	}

	for ext, label := range extensionLabels {
		classifier.byExtension[ext] = label
	}
	for base, label := range basenameLabels {
		classifier.byBasename[base] = label
	}
	for _, ext := range codeExtensions {
		classifier.code[ext] = struct{}{}
	}
	for _, ext := range configExtensions {
		classifier.config[ext] = struct{}{}
	}

	return classifier
}

// Split 从路径中提取小写扩展名（不含点号）和小写基础名。
// 以点号开头且没有其它点号的文件（如 .env）视为没有扩展名。
func Split(path string) (string, string) {
	base := strings.ToLower(filepath.Base(path))

	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return "", base
	}
	return base[idx+1:], base
}

// Label 先按扩展名、再按基础名查找语言名称，均未命中时返回 Unknown。
func (c *Classifier) Label(ext string, base string) string {
	if label, ok := c.byExtension[ext]; ok {
		return label
	}
	if label, ok := c.byBasename[base]; ok {
		return label
	}
	return Unknown
}

// LabelForFile 是 Split + Label 的便捷组合。
func (c *Classifier) LabelForFile(path string) string {
	ext, base := Split(path)
	return c.Label(ext, base)
}

// IsCode 判断扩展名是否属于编程语言集合。
func (c *Classifier) IsCode(ext string) bool {
	_, ok := c.code[ext]
	return ok
}

// IsConfig 判断扩展名是否属于配置文件集合。
func (c *Classifier) IsConfig(ext string) bool {
	_, ok := c.config[ext]
	return ok
}

// Languages 返回按语言名称聚合的映射清单。
func (c *Classifier) Languages() []LanguageDescriptor {
	byName := make(map[string]*LanguageDescriptor)
	lookup := func(name string) *LanguageDescriptor {
		item, ok := byName[name]
		if !ok {
			item = &LanguageDescriptor{Name: name}
			byName[name] = item
		}
		return item
	}

	for ext, name := range c.byExtension {
		item := lookup(name)
		item.Extensions = append(item.Extensions, "."+ext)
	}
	for base, name := range c.byBasename {
		item := lookup(name)
		item.Basenames = append(item.Basenames, base)
	}

	result := make([]LanguageDescriptor, 0, len(byName))
	for _, item := range byName {
		sort.Strings(item.Extensions)
		sort.Strings(item.Basenames)
		result = append(result, *item)
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
