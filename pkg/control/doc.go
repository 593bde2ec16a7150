// Package control implements the generic form-control state engine and the
// concrete control variants built on it.
//
// A Control is the unit of composition: a value plus a small vocabulary of
// flags (required, readonly, disabled, pristine, untouched) and a dynamic
// set of named validators, all exposed as reactive streams. The generic
// engine is Base[T]; every concrete variant (Text, Number, DateTime,
// Checkbox, Radio, Select, MultiSelect, TextArea, File) embeds it and
// contributes only its value semantics and type-specific validators.
//
// Derived state is never independently settable: dirty is the complement
// of pristine, touched of untouched, enabled of disabled, and valid is
// exactly "every installed validator currently passes".
//
// Radio buttons sharing a name within a Scope resolve to one shared
// logical control; see Scope.
package control
