package diff

import (
	"time"
	"unicode/utf8"
)

// SignificanceConfig holds the auto-snapshot trigger thresholds. The three
// triggers are OR-combined, a zero value disables that trigger.
// SignificanceConfig 保存自动快照的触发阈值，三个条件为“或”关系，零值表示关闭该条件
type SignificanceConfig struct {
	// ChangedPercentThreshold 变化字符占比阈值，0.05 等价于相似度低于 0.95
	ChangedPercentThreshold float64
	// MinChangedChars 绝对变化字符数阈值
	MinChangedChars int
	// MinSnapshotInterval 距离上一版本的最小时间间隔
	MinSnapshotInterval time.Duration
}

// SignificanceEvaluator decides whether an edit is worth an automatic
// version. It is a pure decision function with no side effects.
type SignificanceEvaluator struct {
	cfg SignificanceConfig
}

func NewSignificanceEvaluator(cfg SignificanceConfig) *SignificanceEvaluator {
	return &SignificanceEvaluator{cfg: cfg}
}

// IsSignificant reports whether candidate differs enough from previous to
// deserve an automatic version. Identical content is never significant,
// going from empty to non-empty always is. lastVersionAt is the creation
// time of the newest stored version, zero when the note has none.
// IsSignificant 判断候选内容相对上一内容是否值得自动存版本
// 内容相同永不触发，从空到非空必定触发
func (e *SignificanceEvaluator) IsSignificant(previous, candidate string, lastVersionAt time.Time) bool {
	if previous == candidate {
		return false
	}
	if previous == "" && candidate != "" {
		return true
	}

	changed := Compute(previous, candidate).ChangedChars()
	if changed == 0 {
		return false
	}

	total := utf8.RuneCountInString(previous)
	if n := utf8.RuneCountInString(candidate); n > total {
		total = n
	}
	if e.cfg.ChangedPercentThreshold > 0 && total > 0 {
		if float64(changed)/float64(total) > e.cfg.ChangedPercentThreshold {
			return true
		}
	}
	if e.cfg.MinChangedChars > 0 && changed >= e.cfg.MinChangedChars {
		return true
	}
	if e.cfg.MinSnapshotInterval > 0 && !lastVersionAt.IsZero() {
		if time.Since(lastVersionAt) >= e.cfg.MinSnapshotInterval {
			return true
		}
	}
	return false
}
