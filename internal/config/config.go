// Package config 定义扫描配置以及项目级 .codestatsrc 配置文件的加载逻辑。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidConfig 表示配置文件内容无法解析，属于致命错误。
var ErrInvalidConfig = errors.New("invalid configuration file")

// DefaultIgnored 是始终跳过的目录名，会与用户的 ignore 列表合并。
var DefaultIgnored = []string{"node_modules", ".git", "dist", "build", "out", "coverage"}

// FileNames 是按优先级排列的项目级配置文件名，命中第一个即停止。
var FileNames = []string{
	".codestatsrc",
	".codestatsrc.json",
	".codestatsrc.yaml",
	".codestatsrc.yml",
	".codestatsrc.toml",
}

// ScanConfig 是单次扫描的不可变输入，由扫描器与分析器共享。
type ScanConfig struct {
	CountComments bool     `koanf:"countComments"`
	FunctionCount bool     `koanf:"functionCount"`
	AvgFuncLength bool     `koanf:"avgFuncLength"`
	Language      []string `koanf:"language"`
	Ignore        []string `koanf:"ignore"`
	OnlyConfig    bool     `koanf:"onlyConfig"`
	OnlyCode      bool     `koanf:"onlyCode"`
}

// Options 是命令层使用的完整配置，包含展示相关字段。
type Options struct {
	ScanConfig `koanf:",squash"`

	Directory string `koanf:"-"`
	Largest   int    `koanf:"largest"`
	JSON      bool   `koanf:"json"`
	Workers   int    `koanf:"workers"`
}

// Default 返回全部字段的默认值。
func Default() Options {
	return Options{
		Directory: ".",
		Largest:   5,
		Workers:   1,
	}
}

// Find 在目录中按 FileNames 顺序查找配置文件，未找到时返回空字符串。
func Find(directory string) string {
	for _, name := range FileNames {
		path := filepath.Join(directory, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load 读取目录下的项目级配置文件，并叠加在默认值之上。
// 返回值中的字符串为实际使用的配置文件路径，未找到时为空。
func Load(directory string) (Options, string, error) {
	options := Default()
	options.Directory = directory

	path := Find(directory)
	if path == "" {
		return options, "", nil
	}

	loaded, err := LoadFile(path, options)
	if err != nil {
		return options, path, err
	}
	return loaded, path, nil
}

// LoadFile 解析单个配置文件，文件中缺失的键保留 base 中的值。
func LoadFile(path string, base Options) (Options, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return base, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	result := base
	if err := k.UnmarshalWithConf("", &result, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return base, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	result.Language = NormalizeExtensions(result.Language)
	result.Ignore = TrimNames(result.Ignore)
	return result, nil
}

// parserFor 根据文件名选择解析器，无扩展名的 .codestatsrc 按 JSON 解析。
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return json.Parser()
	}
}

// NormalizeExtensions 将语言过滤项统一为小写、无点号的形式，并去除空值。
func NormalizeExtensions(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), ".")
		if value != "" {
			result = append(result, value)
		}
	}
	return result
}

// IgnoreSet 合并默认忽略目录与用户配置，返回只读集合。
func (c ScanConfig) IgnoreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(DefaultIgnored)+len(c.Ignore))
	for _, name := range DefaultIgnored {
		set[name] = struct{}{}
	}
	for _, name := range c.Ignore {
		set[name] = struct{}{}
	}
	return set
}

// LanguageSet 返回语言过滤集合，nil 表示不过滤。
func (c ScanConfig) LanguageSet() map[string]struct{} {
	if len(c.Language) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(c.Language))
	for _, value := range c.Language {
		set[value] = struct{}{}
	}
	return set
}

// TrimNames 去除目录名两侧空白并丢弃空值，配置文件与命令行参数共用。
func TrimNames(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}
