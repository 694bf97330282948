package prompt

import (
	"errors"
	"regexp"
	"strconv"
)

var harmonyScoreRe = regexp.MustCompile(`(?i)Mood\s*Harmony\s*Score:\s*(\d+)\s*/\s*10`)

// ExtractHarmonyScore 从模型输出中解析第一处 "Mood Harmony Score: X/10"，并把 X 限制在 [0,10]。
// 没有匹配时返回 0，超出 int 范围的数字按 10 处理，因此 0 既可能是"没有评分"也可能是真实的 0 分。
func ExtractHarmonyScore(text string) int {
	m := harmonyScoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	val, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		// 捕获组只含数字，溢出只可能是过大的正数
		return 10
	}
	if err != nil {
		return 0
	}
	switch {
	case val < 0:
		return 0
	case val > 10:
		return 10
	default:
		return val
	}
}
