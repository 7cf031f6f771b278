package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

// 从编辑脚本还原两侧文本
func reconstruct(edits []Edit) (oldText, newText string) {
	var oldB, newB strings.Builder
	for _, e := range edits {
		switch e.Op {
		case OpEqual:
			oldB.WriteString(e.Text)
			newB.WriteString(e.Text)
		case OpDelete:
			oldB.WriteString(e.Text)
		case OpInsert:
			newB.WriteString(e.Text)
		}
	}
	return oldB.String(), newB.String()
}

// 验证编辑脚本可以无损还原两侧输入
func TestProperty_EditScriptRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("edits reconstruct both sides", prop.ForAll(
		func(a, b string) bool {
			gotOld, gotNew := reconstruct(Compute(a, b).Edits())
			return gotOld == a && gotNew == b
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("identical inputs yield an empty script", prop.ForAll(
		func(a string) bool {
			r := Compute(a, a)
			return r.IsEmpty() && r.ChangedChars() == 0
		},
		gen.AnyString(),
	))

	properties.Property("same inputs always produce the same script", prop.ForAll(
		func(a, b string) bool {
			first := Compute(a, b).Edits()
			second := Compute(a, b).Edits()
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestCompute_BasicScenarios(t *testing.T) {
	tests := []struct {
		name        string
		oldText     string
		newText     string
		wantEmpty   bool
		wantChanged int
	}{
		{
			name:      "identical",
			oldText:   "Hello World",
			newText:   "Hello World",
			wantEmpty: true,
		},
		{
			name:        "single char replacement",
			oldText:     "Hello",
			newText:     "Hellp",
			wantEmpty:   false,
			wantChanged: 2, // one delete plus one insert
		},
		{
			name:        "empty to content",
			oldText:     "",
			newText:     "Hello",
			wantEmpty:   false,
			wantChanged: 5,
		},
		{
			name:        "content to empty",
			oldText:     "Hello",
			newText:     "",
			wantEmpty:   false,
			wantChanged: 5,
		},
		{
			name:        "multibyte runes counted once",
			oldText:     "笔记",
			newText:     "笔记本",
			wantEmpty:   false,
			wantChanged: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.oldText, tt.newText)
			assert.Equal(t, tt.wantEmpty, r.IsEmpty())
			if !tt.wantEmpty {
				assert.Equal(t, tt.wantChanged, r.ChangedChars())
			}
		})
	}
}

func TestResult_HTML(t *testing.T) {
	r := Compute("Hello World", "Hello <b>Go</b> World")

	got := r.HTML()
	assert.Contains(t, got, "<ins")
	// 输入中的 HTML 必须被转义
	assert.NotContains(t, got, "<b>")
	assert.Contains(t, got, "&lt;b&gt;")

	del := Compute("Hello World", "Hello").HTML()
	assert.Contains(t, del, "<del")
}

func TestResult_Text(t *testing.T) {
	t.Run("insert and delete markers", func(t *testing.T) {
		got := Compute("Hello World", "Hello Go").Text()
		assert.Contains(t, got, "  Hello ")
		assert.Contains(t, got, "- World")
		assert.Contains(t, got, "+ Go")
	})

	t.Run("long equal span is elided", func(t *testing.T) {
		equal := strings.Repeat("a", 100)
		got := Compute(equal+"X", equal+"Y").Text()
		want := "  " + strings.Repeat("a", 30) + "..." + strings.Repeat("a", 30)
		assert.Contains(t, got, want)
		assert.NotContains(t, got, strings.Repeat("a", 61))
	})

	t.Run("short equal span kept verbatim", func(t *testing.T) {
		got := Compute("short textX", "short textY").Text()
		assert.Contains(t, got, "  short text")
		assert.NotContains(t, got, "...")
	})
}
