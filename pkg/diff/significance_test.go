package diff

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func testEvaluator() *SignificanceEvaluator {
	return NewSignificanceEvaluator(SignificanceConfig{
		ChangedPercentThreshold: 0.05,
		MinChangedChars:         200,
		MinSnapshotInterval:     30 * time.Minute,
	})
}

// 内容相同永不触发
func TestProperty_IdenticalNeverSignificant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("identical content is never significant", prop.ForAll(
		func(s string) bool {
			return !testEvaluator().IsSignificant(s, s, time.Time{})
		},
		gen.AnyString(),
	))

	properties.Property("empty to non-empty is always significant", prop.ForAll(
		func(s string) bool {
			if s == "" {
				return true
			}
			return testEvaluator().IsSignificant("", s, time.Time{})
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestIsSignificant_PercentThreshold(t *testing.T) {
	e := testEvaluator()
	base := strings.Repeat("a", 1000)

	// 10 个字符的变化只有 1%，低于 5% 阈值
	small := base[:990] + strings.Repeat("b", 10)
	assert.False(t, e.IsSignificant(base, small, time.Now()))

	// 100 个字符的变化约 10%，超过阈值
	large := base[:900] + strings.Repeat("b", 100)
	assert.True(t, e.IsSignificant(base, large, time.Now()))
}

func TestIsSignificant_AbsoluteChars(t *testing.T) {
	// 占比阈值设得极高，只剩绝对字符数条件
	e := NewSignificanceEvaluator(SignificanceConfig{
		ChangedPercentThreshold: 0.99,
		MinChangedChars:         200,
	})
	base := strings.Repeat("a", 10000)

	below := base + strings.Repeat("b", 150)
	assert.False(t, e.IsSignificant(base, below, time.Now()))

	above := base + strings.Repeat("b", 250)
	assert.True(t, e.IsSignificant(base, above, time.Now()))
}

func TestIsSignificant_TimeInterval(t *testing.T) {
	e := testEvaluator()
	base := strings.Repeat("a", 10000)
	// 单字符修改，既不满足占比也不满足绝对数
	tiny := base[:9999] + "b"

	assert.False(t, e.IsSignificant(base, tiny, time.Now()))
	// 距离上一版本足够久后，同样的小改动应触发
	assert.True(t, e.IsSignificant(base, tiny, time.Now().Add(-time.Hour)))
	// 没有历史版本时时间条件不参与
	assert.False(t, e.IsSignificant(base, tiny, time.Time{}))
}

func TestIsSignificant_DisabledTriggers(t *testing.T) {
	e := NewSignificanceEvaluator(SignificanceConfig{})
	assert.False(t, e.IsSignificant("abc", "abcdef", time.Now().Add(-24*time.Hour)))
	// 从空到非空的规则不受配置影响
	assert.True(t, e.IsSignificant("", "abc", time.Time{}))
}
