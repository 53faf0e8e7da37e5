package model

import "fmt"

type Difficulty uint32

const (
	DifficultyAny Difficulty = iota
	Easy
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return ""
	}
}

func (d Difficulty) IsAny() bool {
	return d.String() == ""
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "":
		return DifficultyAny, nil
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return DifficultyAny, fmt.Errorf("Unknown difficulty %q", s)
	}
}
