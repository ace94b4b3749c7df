package narration

import (
	"fmt"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
)

// Rewards are spoken after a flawless item.
var Rewards = []string{
	"آفرین قَهرمان!",
	"عالی بود عَزیزم",
	"خیلی باهوشی!",
	"صد آفرین به تو",
	"ماشاالله، ادامه بِدِه!",
}

// Instruction is the spoken prompt for a drill.
func Instruction(t activity.Type, it content.Item) string {
	switch t {
	case activity.Intro:
		return fmt.Sprintf("بیا با هم بِنِویسیم: «%s»...", it.Character)
	case activity.MissingLetter:
		return fmt.Sprintf("توی کلمه %s، کدوم نِشانه گُم شده؟", it.Word)
	case activity.Spelling:
		return fmt.Sprintf("حالا خودت بِنِویس: «%s»", it.Word)
	case activity.Recognition:
		return fmt.Sprintf("تَصویرِ %s کُجاست؟", it.Word)
	case activity.Recall:
		return fmt.Sprintf("زود بِنِویس: «%s»", it.Word)
	default:
		return ""
	}
}

// StoryFallback is told when no story could be generated.
func StoryFallback(word string) string {
	return fmt.Sprintf("یه روز یه %s مهربون داشتیم که خیلی خوشحال بود!", word)
}

// LearnTogether replaces a story whose generation failed.
func LearnTogether(word string) string {
	return fmt.Sprintf("بیا با هم درباره %s یاد بگیریم!", word)
}
