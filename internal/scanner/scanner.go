// Package scanner 提供目录遍历与扫描调度能力。
// 该层负责忽略规则、分类过滤、任务收集与结果汇总，不负责单文件指标的计算细节。
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"codestats/internal/analyzer"
	"codestats/internal/config"
	"codestats/internal/languages"
	"codestats/internal/logger"
	"codestats/internal/model"

	"github.com/sourcegraph/conc/iter"
)

// Service 是扫描服务对象。
type Service struct {
	classifier *languages.Classifier
	analyzer   *analyzer.FileAnalyzer
	workers    int

	// OnFile 在每个文件分析结束后调用（无论成功、跳过还是失败）。
	// workers > 1 时会被并发调用。
	OnFile func()
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	path string
}

// workerResult 表示单个任务的执行产物，二者至多一个非空。
type workerResult struct {
	record    *model.FileRecord
	scanError *model.ScanError
}

// walkState 保存一次遍历内的可变状态。
type walkState struct {
	cfg     config.ScanConfig
	ignored map[string]struct{}
	visited map[string]struct{}
	tasks   []scanTask
	errors  []model.ScanError
}

// NewService 创建扫描服务。workers <= 0 时使用 CPU 核数。
func NewService(classifier *languages.Classifier, workers int) *Service {
	if classifier == nil {
		classifier = languages.NewClassifier()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Service{
		classifier: classifier,
		analyzer:   analyzer.New(classifier),
		workers:    workers,
	}
}

// Scan 扫描目录或单文件。
// 根路径不存在或不可读时返回错误；子目录与单文件的失败记录在 ScanResult.Errors 中。
// Files 的顺序为按名称排序的深度优先遍历顺序，与 workers 数量无关。
func (s *Service) Scan(root string, cfg config.ScanConfig) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedRoot := strings.TrimSpace(root)
	if trimmedRoot == "" {
		return result, errors.New("scan path is empty")
	}

	info, err := os.Stat(trimmedRoot)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}
	result.ScannedPath = trimmedRoot

	state := &walkState{
		cfg:     cfg,
		ignored: cfg.IgnoreSet(),
		visited: make(map[string]struct{}),
	}

	if info.IsDir() {
		entries, readErr := os.ReadDir(trimmedRoot)
		if readErr != nil {
			return result, fmt.Errorf("read directory: %w", readErr)
		}
		s.markVisited(state, trimmedRoot)
		s.walkEntries(state, trimmedRoot, entries)
	} else {
		s.enqueueFile(state, trimmedRoot)
	}

	results := s.runTasks(state.tasks, cfg)

	result.Files = make([]model.FileRecord, 0, len(results))
	result.Errors = state.errors
	for _, item := range results {
		if item.record != nil {
			result.Files = append(result.Files, *item.record)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}
	if result.Errors == nil {
		result.Errors = make([]model.ScanError, 0)
	}

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	logger.Get().Info().
		Str("root", result.ScannedPath).
		Int("files", len(result.Files)).
		Int("errors", len(result.Errors)).
		Msg("scan finished")

	return result, nil
}

// walkDirectory 读取子目录并继续遍历，读取失败只跳过该子树。
func (s *Service) walkDirectory(state *walkState, dir string) {
	if !s.markVisited(state, dir) {
		logger.Get().Debug().Str("path", dir).Msg("directory already visited, skipping")
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Get().Warn().Err(err).Str("path", dir).Msg("skip unreadable directory")
		state.errors = append(state.errors, model.ScanError{Path: dir, Error: err.Error()})
		return
	}
	s.walkEntries(state, dir, entries)
}

// walkEntries 按名称顺序处理目录项（os.ReadDir 已排序）。
func (s *Service) walkEntries(state *walkState, dir string, entries []os.DirEntry) {
	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(fullPath)
			if err != nil {
				logger.Get().Warn().Err(err).Str("path", fullPath).Msg("skip broken symlink")
				state.errors = append(state.errors, model.ScanError{Path: fullPath, Error: err.Error()})
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if _, skip := state.ignored[entry.Name()]; skip {
				logger.Get().Debug().Str("path", fullPath).Msg("skip ignored directory")
				continue
			}
			s.walkDirectory(state, fullPath)
			continue
		}

		s.enqueueFile(state, fullPath)
	}
}

// enqueueFile 应用 only-code / only-config 过滤后加入任务队列。
func (s *Service) enqueueFile(state *walkState, path string) {
	ext, _ := languages.Split(path)

	if state.cfg.OnlyCode && !s.classifier.IsCode(ext) {
		return
	}
	if state.cfg.OnlyConfig && !s.classifier.IsConfig(ext) {
		return
	}

	state.tasks = append(state.tasks, scanTask{path: path})
}

// markVisited 以规范路径记录目录，已访问过时返回 false，用于规避符号链接环。
func (s *Service) markVisited(state *walkState, dir string) bool {
	key := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		key = resolved
	}
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	if _, seen := state.visited[key]; seen {
		return false
	}
	state.visited[key] = struct{}{}
	return true
}

// runTasks 执行文件分析，结果顺序与任务顺序一致。
func (s *Service) runTasks(tasks []scanTask, cfg config.ScanConfig) []workerResult {
	if len(tasks) == 0 {
		return nil
	}

	analyze := func(task *scanTask) workerResult {
		item := s.analyzeTask(*task, cfg)
		if s.OnFile != nil {
			s.OnFile()
		}
		return item
	}

	if s.workers == 1 {
		results := make([]workerResult, 0, len(tasks))
		for i := range tasks {
			results = append(results, analyze(&tasks[i]))
		}
		return results
	}

	mapper := iter.Mapper[scanTask, workerResult]{MaxGoroutines: s.workers}
	return mapper.Map(tasks, analyze)
}

// analyzeTask 执行单文件分析，失败转换为 ScanError。
func (s *Service) analyzeTask(task scanTask, cfg config.ScanConfig) workerResult {
	record, err := s.analyzer.Analyze(task.path, cfg)
	if err != nil {
		logger.Get().Warn().Err(err).Str("path", task.path).Msg("skip unreadable file")
		return workerResult{
			scanError: &model.ScanError{
				Path:  task.path,
				Error: err.Error(),
			},
		}
	}
	return workerResult{record: record}
}
