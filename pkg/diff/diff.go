// Package diff computes deterministic character-level diffs between two
// note snapshots and renders them for API consumers.
// diff 包负责计算两个笔记快照之间的字符级差异并渲染输出
package diff

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Operation 差异操作类型
type Operation string

const (
	OpEqual  Operation = "equal"
	OpInsert Operation = "insert"
	OpDelete Operation = "delete"
)

// Edit is one entry of the normalized edit script.
// Edit 是规范化编辑脚本中的一项
type Edit struct {
	Op   Operation `json:"op"`
	Text string    `json:"text"`
}

// Result holds a computed diff. It is immutable after Compute.
type Result struct {
	diffs []diffmatchpatch.Diff
}

// Equal-span rendering limits for the plain-text view.
// 纯文本视图中相同片段的截断长度
const (
	textContextLimit = 60
	textContextEdge  = 30
)

// Compute diffs oldText against newText. Same inputs always produce the
// same script: character-level myers diff followed by semantic cleanup so
// edits align with word boundaries where possible.
// Compute 对两个文本做字符级 diff，语义清理后保证边界对齐且结果确定
func Compute(oldText, newText string) *Result {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return &Result{diffs: diffs}
}

// Edits returns the normalized edit script in document order.
func (r *Result) Edits() []Edit {
	edits := make([]Edit, 0, len(r.diffs))
	for _, d := range r.diffs {
		edits = append(edits, Edit{Op: toOperation(d.Type), Text: d.Text})
	}
	return edits
}

// IsEmpty reports whether the two inputs were identical.
func (r *Result) IsEmpty() bool {
	for _, d := range r.diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return false
		}
	}
	return true
}

// ChangedChars counts the characters covered by insert and delete edits.
// ChangedChars 统计插入与删除操作覆盖的字符数
func (r *Result) ChangedChars() int {
	changed := 0
	for _, d := range r.diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			changed += utf8.RuneCountInString(d.Text)
		}
	}
	return changed
}

// HTML renders the diff with <ins>/<del> wrappers and escaped text, safe
// for direct embedding into a document view.
// HTML 渲染带 <ins>/<del> 标签的差异视图，文本已转义可直接嵌入页面
func (r *Result) HTML() string {
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyHtml(r.diffs)
}

// Text renders a line-oriented plain view: "+ " for inserts, "- " for
// deletes, two-space indented context for equal spans. Equal spans longer
// than 60 chars keep the first and last 30 joined by "...".
// Text 渲染纯文本视图，过长的相同片段只保留首尾各 30 个字符
func (r *Result) Text() string {
	lines := make([]string, 0, len(r.diffs))
	for _, d := range r.diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			lines = append(lines, "+ "+d.Text)
		case diffmatchpatch.DiffDelete:
			lines = append(lines, "- "+d.Text)
		case diffmatchpatch.DiffEqual:
			lines = append(lines, "  "+truncateContext(d.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func truncateContext(text string) string {
	runes := []rune(text)
	if len(runes) <= textContextLimit {
		return text
	}
	return string(runes[:textContextEdge]) + "..." + string(runes[len(runes)-textContextEdge:])
}

func toOperation(t diffmatchpatch.Operation) Operation {
	switch t {
	case diffmatchpatch.DiffInsert:
		return OpInsert
	case diffmatchpatch.DiffDelete:
		return OpDelete
	default:
		return OpEqual
	}
}
