package model

// Mood 是旅行者偏好的出行风格。
type Mood string

const (
	MoodAdventure    Mood = "Adventure"
	MoodRelaxation   Mood = "Relaxation"
	MoodCulture      Mood = "Culture"
	MoodNightlife    Mood = "Nightlife"
	MoodFoodExplorer Mood = "Food & Exploration"
	MoodRomantic     Mood = "Romantic"
)

// Moods 按表单中的展示顺序列出全部性格标签。
var Moods = []Mood{
	MoodAdventure,
	MoodRelaxation,
	MoodCulture,
	MoodNightlife,
	MoodFoodExplorer,
	MoodRomantic,
}

// IsKnownMood 判断 s 是否为合法的性格标签，Unspecified 也视为合法。
func IsKnownMood(s string) bool {
	if s == Unspecified {
		return true
	}
	for _, m := range Moods {
		if string(m) == s {
			return true
		}
	}
	return false
}
