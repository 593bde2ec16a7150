package validate

import (
	"github.com/formwork-dev/formwork/pkg/reactive"
)

// Rule derives a boolean validator stream from a value stream and a
// predicate. The result re-evaluates whenever src emits but only
// notifies downstream when the outcome flips; it can be installed on a
// control via SetValidator.
func Rule[T any](src reactive.Value[T], pred func(T) bool) *reactive.Memo[bool] {
	return reactive.NewMemo(func() bool {
		return pred(src.Get())
	})
}

// All combines predicates with logical AND.
func All[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Any combines predicates with logical OR.
// An empty predicate list is vacuously false.
func Any[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}
