package vision

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited и ErrPaymentRequired пробрасываются наверх как есть:
	// пользователь должен увидеть их отдельно от обычного сбоя распознавания.
	ErrRateLimited     = errors.New("analysis service rate limit exceeded")
	ErrPaymentRequired = errors.New("analysis service requires payment")
)

// Extraction — сырой результат распознавания скриншота. nil в любом из полей
// означает, что модель не смогла прочитать значение; такой результат целиком
// отбрасывается вызывающей стороной.
type Extraction struct {
	Placement *int `json:"placement"`
	Kills     *int `json:"kills"`
}

// Complete reports whether both fields were extracted.
func (e Extraction) Complete() bool {
	return e.Placement != nil && e.Kills != nil
}

// Analyzer reads a match result screenshot by URL. Implementations are an
// untrusted oracle: callers must validate the extraction against the same
// domain rules as manually entered results.
type Analyzer interface {
	Analyze(ctx context.Context, imageURL string) (Extraction, error)
}
