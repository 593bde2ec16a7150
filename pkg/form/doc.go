// Package form folds many controls into one valid/value/error/submit view.
//
// A Form owns a registration-ordered set of controls and derives:
//
//   - RxValid: logical AND of every member's validity (vacuously true
//     for an empty form)
//   - RxValue: a name→value snapshot
//   - RxErrors: a name→failing-validator-names snapshot, holding entries
//     only for controls with at least one error
//   - a submit stream that carries the value snapshot exactly when a
//     submit trigger fires while the form is valid
//
// Every submit trigger marks all registered controls touched before the
// validity gate is read; this is how "show all errors after a submit
// attempt" works. An invalid-at-trigger-time submission is silently
// dropped.
//
// The form also owns the Scope used for grouped-control (radio) name
// resolution, so group lifecycles are bounded by the form's.
package form
