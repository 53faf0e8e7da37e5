package model

import "fmt"

const (
	DefaultAmount int = 5
	// OpenTDBは1回50問まで
	MaxAmount int = 50
)

type FetchRequest struct {
	Amount     int
	Category   *int
	Difficulty Difficulty
}

func (fr FetchRequest) HasCategory() bool {
	return fr.Category != nil
}

// 構造体リテラルで作られたリクエストもNewFetchRequestと同じ規則にそろえる
func (fr FetchRequest) Normalized() (FetchRequest, error) {
	return NewFetchRequest(fr.Amount, fr.Category, fr.Difficulty)
}

func NewFetchRequest(amount int, category *int, difficulty Difficulty) (FetchRequest, error) {
	if amount < 0 || amount > MaxAmount {
		return FetchRequest{}, fmt.Errorf("Amount must be between 1 and %d, got %d", MaxAmount, amount)
	}
	if amount == 0 {
		amount = DefaultAmount
	}
	var c *int
	if category != nil {
		v := *category
		c = &v
	}
	return FetchRequest{
		Amount:     amount,
		Category:   c,
		Difficulty: difficulty,
	}, nil
}

func DefaultFetchRequest() FetchRequest {
	return FetchRequest{Amount: DefaultAmount}
}
