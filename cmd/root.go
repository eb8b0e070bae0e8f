// Package cmd 提供 codestats 的命令行入口与子命令编排。
package cmd

import (
	"codestats/internal/languages"
	"codestats/internal/logger"

	"github.com/spf13/cobra"
)

// rootOptions 存放所有子命令共享的日志参数。
type rootOptions struct {
	logLevel string
	logJSON  bool
	logFile  string
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	classifier := languages.NewClassifier()
	rootCmd := newRootCmd(version, classifier)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, classifier *languages.Classifier) *cobra.Command {
	options := rootOptions{logLevel: "warn"}

	rootCmd := &cobra.Command{
		Use:   "codestats",
		Short: "基于启发式规则的代码统计工具",
		Long: "codestats 递归扫描目录，按语言统计 total/blank/comment/code 行数，\n" +
			"并给出启发式复杂度、函数数量与平均函数长度，支持表格与 JSON 报告输出。",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Init(logger.Config{
				Level: options.logLevel,
				JSON:  options.logJSON,
				File:  options.logFile,
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.logLevel, "log-level", options.logLevel, "日志级别: trace, debug, info, warn, error, off")
	flags.BoolVar(&options.logJSON, "log-json", false, "以 JSON 格式输出日志")
	flags.StringVar(&options.logFile, "log-file", "", "额外写入的滚动日志文件路径")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(classifier))
	rootCmd.AddCommand(newScanCmd(classifier))

	return rootCmd
}
