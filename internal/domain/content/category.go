package content

import (
	"fmt"

	domainerr "belajar/internal/domain/errors"
)

type Category string

const (
	CategoryMathematics     Category = "mathematics"
	CategoryComputerScience Category = "computer-science"
	CategoryProgramming     Category = "programming"
	CategoryTools           Category = "tools"
	CategoryGeneral         Category = "general"
)

var AllCategories = []Category{
	CategoryMathematics,
	CategoryComputerScience,
	CategoryProgramming,
	CategoryTools,
	CategoryGeneral,
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("category %q: %w", s, domainerr.ErrInvalid)
}

func (c Category) String() string { return string(c) }

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func NewDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d, nil
	}
	return "", fmt.Errorf("difficulty %q: %w", s, domainerr.ErrInvalid)
}

func (d Difficulty) String() string { return string(d) }
