package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"codestats/internal/config"
	"codestats/internal/languages"
	"codestats/internal/logger"
	"codestats/internal/progress"
	"codestats/internal/report"
	"codestats/internal/scanner"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// timeNow 用于报告时间戳，测试中可替换。
var timeNow = time.Now

// scanFlags 存放 scan 命令行参数，仅在用户显式设置时覆盖配置文件。
type scanFlags struct {
	countComments bool
	functionCount bool
	avgFuncLength bool
	language      []string
	ignore        []string
	onlyConfig    bool
	onlyCode      bool
	largest       int
	json          bool
	workers       int
	noProgress    bool
	noColor       bool
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	codestats scan .
//	codestats scan ./project -c -f -a --largest 10
//	codestats scan ./project --only-code --ignore vendor --json
func newScanCmd(classifier *languages.Classifier) *cobra.Command {
	defaults := config.Default()
	flags := scanFlags{
		largest: defaults.Largest,
		workers: defaults.Workers,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "扫描目录并输出代码统计信息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := "."
			if len(args) == 1 {
				directory = args[0]
			}

			options, configPath, err := config.Load(directory)
			if err != nil {
				return err
			}
			if configPath != "" {
				logger.Get().Debug().Str("path", configPath).Msg("loaded project config")
			}
			applyFlags(cmd.Flags(), &options, flags)

			if options.Largest < 0 {
				return errors.New("largest must not be negative")
			}
			if options.Workers <= 0 {
				options.Workers = runtime.NumCPU()
			}
			if flags.noColor {
				color.NoColor = true
			}

			return runScan(cmd, classifier, options, !flags.noProgress)
		},
	}

	f := scanCmd.Flags()
	f.BoolVarP(&flags.countComments, "count-comments", "c", false, "统计注释行")
	f.BoolVarP(&flags.functionCount, "function-count", "f", false, "统计函数/方法数量")
	f.BoolVarP(&flags.avgFuncLength, "avg-func-length", "a", false, "计算平均函数长度（需同时开启 -f）")
	f.StringSliceVarP(&flags.language, "language", "l", nil, "只扫描指定扩展名或文件名，如 -l js,ts -l makefile")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "额外忽略的目录名，与默认集合合并")
	f.BoolVar(&flags.onlyConfig, "only-config", false, "只扫描配置文件")
	f.BoolVar(&flags.onlyCode, "only-code", false, "只扫描代码文件")
	f.IntVar(&flags.largest, "largest", flags.largest, "展示代码行最多的前 N 个文件，0 表示不展示")
	f.BoolVar(&flags.json, "json", false, "写入 <directory>/code-stats/report.json")
	f.IntVar(&flags.workers, "workers", flags.workers, "并发分析的 worker 数量，<=0 表示 CPU 核数")
	f.BoolVar(&flags.noProgress, "no-progress", false, "关闭进度条")
	f.BoolVar(&flags.noColor, "no-color", false, "关闭彩色输出")

	return scanCmd
}

// applyFlags 将用户显式设置的参数覆盖到配置文件加载的结果上。
func applyFlags(set *pflag.FlagSet, options *config.Options, flags scanFlags) {
	if set.Changed("count-comments") {
		options.CountComments = flags.countComments
	}
	if set.Changed("function-count") {
		options.FunctionCount = flags.functionCount
	}
	if set.Changed("avg-func-length") {
		options.AvgFuncLength = flags.avgFuncLength
	}
	if set.Changed("language") {
		options.Language = config.NormalizeExtensions(flags.language)
	}
	if set.Changed("ignore") {
		options.Ignore = config.TrimNames(flags.ignore)
	}
	if set.Changed("only-config") {
		options.OnlyConfig = flags.onlyConfig
	}
	if set.Changed("only-code") {
		options.OnlyCode = flags.onlyCode
	}
	if set.Changed("largest") {
		options.Largest = flags.largest
	}
	if set.Changed("json") {
		options.JSON = flags.json
	}
	if set.Changed("workers") {
		options.Workers = flags.workers
	}
}

// runScan 执行扫描并按配置输出表格或 JSON 报告。
func runScan(cmd *cobra.Command, classifier *languages.Classifier, options config.Options, showProgress bool) error {
	service := scanner.NewService(classifier, options.Workers)

	var tracker *progress.Tracker
	if showProgress {
		tracker = progress.NewTracker("Scanning", cmd.ErrOrStderr())
		service.OnFile = tracker.Tick
	}

	result, err := service.Scan(options.Directory, options.ScanConfig)
	if tracker != nil {
		logger.Get().Debug().Int64("processed", tracker.Count()).Msg("progress finished")
	}
	tracker.Finish()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colored := !color.NoColor

	if options.JSON {
		path, saveErr := report.Save(report.Aggregate(options.Directory, result.Files, timeNow()))
		if saveErr != nil {
			return saveErr
		}
		if absPath, absErr := filepath.Abs(path); absErr == nil {
			path = absPath
		}
		logger.Get().Info().Str("path", path).Int("files", len(result.Files)).Msg("report saved")
		_, err = fmt.Fprintln(out, paintStatus(colored, fmt.Sprintf("JSON report saved to %s", path)))
		return err
	}

	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = ""
	}

	return report.PrintTables(out, result, report.TableOptions{
		Largest:       options.Largest,
		CountComments: options.CountComments,
		Colored:       colored,
		BaseDir:       baseDir,
	})
}

func paintStatus(colored bool, text string) string {
	if !colored {
		return text
	}
	return color.GreenString(text)
}
