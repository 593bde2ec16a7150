// Package validate builds named validator predicates for form controls.
//
// Every validator follows the same shape: a reactive value stream is
// combined with a plain predicate into a derived boolean stream that
// re-evaluates whenever the value changes:
//
//	ok := validate.Rule(ctrl.RxValue(), validate.MinLength(2))
//	ctrl.SetValidator("minlength", ok)
//
// The predicate constructors mirror the usual HTML input constraints:
// Pattern, MinLength/MaxLength, Min/Max, Email, URL, and friends. A
// predicate returns true for the empty value; emptiness is the business
// of the built-in "required" validator, not of shape checks.
package validate
