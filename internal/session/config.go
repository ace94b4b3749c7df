package session

import "time"

// Config tunes the sequencer and judge.
type Config struct {
	// LearningExtras is the most mastered items mixed into a learning
	// session after the main item.
	LearningExtras int `mapstructure:"learning_extras" validate:"gte=0,lte=5"`

	// ReviewSize caps the number of items in a review session.
	ReviewSize int `mapstructure:"review_size" validate:"gte=1,lte=20"`

	// SuccessDelay is the pause after a flawless completion before the
	// next item; FlawedDelay applies when the item had a wrong tap.
	SuccessDelay time.Duration `mapstructure:"success_delay" validate:"gte=0"`
	FlawedDelay  time.Duration `mapstructure:"flawed_delay" validate:"gte=0"`

	// MissingLetterCountsForStreak lets missing-letter completions extend
	// the streak. They can never break it.
	MissingLetterCountsForStreak bool `mapstructure:"missing_letter_counts_for_streak"`
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{
		LearningExtras:               2,
		ReviewSize:                   5,
		SuccessDelay:                 2 * time.Second,
		FlawedDelay:                  time.Second,
		MissingLetterCountsForStreak: true,
	}
}
