// Package progress 封装扫描进度条，只负责展示，不参与统计。
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Tracker 包装一个文件处理进度条。
type Tracker struct {
	bar *progressbar.ProgressBar
}

// NewTracker 创建总量未知的计数进度条，写入 w（通常为 stderr）。
func NewTracker(label string, w io.Writer) *Tracker {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)
	return &Tracker{bar: bar}
}

// Tick 进度 +1，可并发调用。
func (t *Tracker) Tick() {
	if t == nil {
		return
	}
	_ = t.bar.Add(1)
}

// Count 返回已经计数的文件数。
func (t *Tracker) Count() int64 {
	if t == nil {
		return 0
	}
	return int64(t.bar.State().CurrentNum)
}

// Finish 结束并清除进度条。
func (t *Tracker) Finish() {
	if t == nil {
		return
	}
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}
