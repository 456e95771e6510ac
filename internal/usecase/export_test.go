package usecase

import "time"

// SetClock pins the evaluator's notion of now.
func (e *BadgeEvaluator) SetClock(now func() time.Time) {
	e.now = now
}

func (uc *NFCUseCase) SetClock(now func() time.Time) {
	uc.now = now
}
