// Package prompt 把表单输入组装成发送给模型的自然语言指令，并从模型输出中解析和谐度评分。
// 包内函数都是纯函数，不做 I/O，也不返回错误；输入范围由调用方保证。
package prompt

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"trip-planner-go/internal/model"
)

const (
	// IndividualClosing 个人模式的固定结尾：要求 3 个目的地，并以占位评分行结束。
	IndividualClosing = "Please suggest exactly 3 destinations with approximate costs and a short reason. " +
		"End with 'Mood Harmony Score: 7/10' as a placeholder even if solo."

	// GroupClosing 团体模式的固定结尾。
	GroupClosing = "Suggest 3 destinations balancing everyone's personalities with estimated total cost, " +
		"flight feasibility from these airports, and a brief reason for each. " +
		"End with 'Mood Harmony Score: X/10'."
)

// IndividualInput 个人行程表单。
type IndividualInput struct {
	Budget    float64
	Days      int
	Airport   string
	Continent string
}

// BuildIndividualPrompt 生成个人模式的 prompt。
func BuildIndividualPrompt(in IndividualInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My budget is $%s, I want to travel for %d days, and my nearest airport is %s. ",
		formatAmount(in.Budget), in.Days, in.Airport)
	if continent := strings.TrimSpace(in.Continent); continent != "" {
		fmt.Fprintf(&b, "I prefer visiting %s. ", continent)
	}
	b.WriteString(IndividualClosing)
	return b.String()
}

// BuildGroupPrompt 生成团体模式的 prompt。
// 机场与大洲去重后按字典序拼接，成员性格按输入顺序拼接。
func BuildGroupPrompt(members []model.MemberInput, days int) string {
	total := TotalBudget(members)
	avg := AverageBudget(members)

	airports := make([]string, 0, len(members))
	continents := make([]string, 0, len(members))
	personalities := make([]string, 0, len(members))
	for _, m := range members {
		airports = append(airports, m.Airport)
		if c := strings.TrimSpace(m.Continent); c != "" && c != model.Unspecified {
			continents = append(continents, c)
		}
		personalities = append(personalities, fmt.Sprintf("%s (%s)", m.Name, m.MoodOrDefault()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A group of %d people is planning a %d-day trip. ", len(members), days)
	fmt.Fprintf(&b, "Total combined budget: $%.2f (~$%.2f/person). ", total, avg)
	fmt.Fprintf(&b, "Nearest airports: %s. ", strings.Join(distinctSorted(airports), ", "))
	fmt.Fprintf(&b, "Group personalities: %s. ", strings.Join(personalities, ", "))
	if regions := distinctSorted(continents); len(regions) > 0 {
		fmt.Fprintf(&b, "Preferred regions: %s. ", strings.Join(regions, ", "))
	}
	b.WriteString(GroupClosing)
	return b.String()
}

// TotalBudget 返回成员预算之和。
func TotalBudget(members []model.MemberInput) float64 {
	var total float64
	for _, m := range members {
		total += m.Budget
	}
	return total
}

// AverageBudget 返回人均预算，保留两位小数。空列表返回 0。
func AverageBudget(members []model.MemberInput) float64 {
	if len(members) == 0 {
		return 0
	}
	return math.Round(TotalBudget(members)/float64(len(members))*100) / 100
}

// MoodCount 是某个性格标签在团体中的人数。
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// MoodDistribution 统计团体的性格分布，人数多的在前，人数相同按名称排序。
func MoodDistribution(members []model.MemberInput) []MoodCount {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.MoodOrDefault()]++
	}
	out := make([]MoodCount, 0, len(counts))
	for mood, n := range counts {
		out = append(out, MoodCount{Mood: mood, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mood < out[j].Mood
	})
	return out
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// formatAmount 以最短的精确十进制形式输出金额：1000 -> "1000"，1250.5 -> "1250.5"。
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
