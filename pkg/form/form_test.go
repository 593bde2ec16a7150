package form

import (
	"errors"
	"testing"

	"github.com/formwork-dev/formwork/pkg/control"
	"github.com/formwork-dev/formwork/pkg/reactive"
)

func TestFormEmptyIsValid(t *testing.T) {
	f := New()

	if !f.Valid() {
		t.Error("empty form should be vacuously valid")
	}
	if len(f.Values()) != 0 {
		t.Errorf("empty form should have no values, got %v", f.Values())
	}
	if len(f.Errors()) != 0 {
		t.Errorf("empty form should have no errors, got %v", f.Errors())
	}
}

func TestFormAggregatesValidity(t *testing.T) {
	f := New()
	a := control.NewText("a")
	b := control.NewText("b")
	b.SetRequired(true)

	f.AddControl(a)
	f.AddControl(b)

	if f.Valid() {
		t.Error("form with an invalid control should be invalid")
	}
	if f.Invalid() != !f.Valid() {
		t.Error("Invalid should be the complement of Valid")
	}

	b.SetValue("x")
	if !f.Valid() {
		t.Errorf("form should be valid once every control is, errors %v", f.Errors())
	}
}

func TestFormValuesSnapshot(t *testing.T) {
	f := New()
	name := control.NewText("name")
	name.SetValue("ada")
	agree := control.NewCheckbox("agree")
	agree.SetValue(true)

	f.AddControl(name)
	f.AddControl(agree)

	values := f.Values()
	if values["name"] != "ada" {
		t.Errorf("expected name=ada, got %v", values["name"])
	}
	if values["agree"] != true {
		t.Errorf("expected agree=true, got %v", values["agree"])
	}

	// Snapshot follows member emissions
	name.SetValue("grace")
	if f.Values()["name"] != "grace" {
		t.Errorf("snapshot should track member changes, got %v", f.Values()["name"])
	}
}

func TestFormValuesDuplicateNameLastWins(t *testing.T) {
	f := New()
	first := control.NewText("n")
	first.SetValue("one")
	second := control.NewText("n")
	second.SetValue("two")

	f.AddControl(first)
	f.AddControl(second)

	if got := f.Values()["n"]; got != "two" {
		t.Errorf("later registration should win the name, got %v", got)
	}
}

func TestFormErrorsSnapshot(t *testing.T) {
	f := New()
	a := control.NewText("a")
	a.SetRequired(true)
	b := control.NewText("b")

	f.AddControl(a)
	f.AddControl(b)

	errs := f.Errors()
	if got := errs["a"]; len(got) != 1 || got[0] != control.RequiredValidator {
		t.Errorf("expected a:[required], got %v", errs)
	}
	if _, ok := errs["b"]; ok {
		t.Error("valid control should have no errors entry")
	}
}

func TestFormAddIdempotent(t *testing.T) {
	f := New()
	c := control.NewText("a")

	f.AddControl(c)
	f.AddControl(c)

	if got := len(f.Controls()); got != 1 {
		t.Errorf("double add should register once, got %d controls", got)
	}
}

func TestFormRemoveControl(t *testing.T) {
	f := New()
	a := control.NewText("a")
	a.SetRequired(true)
	f.AddControl(a)

	if f.Valid() {
		t.Error("form should be invalid before removal")
	}

	f.RemoveControl(a)
	if !f.Valid() {
		t.Error("removing the invalid control should restore validity")
	}

	// Removing again is a no-op
	f.RemoveControl(a)
	if len(f.Controls()) != 0 {
		t.Errorf("expected no controls, got %d", len(f.Controls()))
	}
}

func TestFormDisconnectRemovesControl(t *testing.T) {
	f := New()
	a := control.NewText("a")
	f.AddControl(a)

	a.Disconnect()

	if len(f.Controls()) != 0 {
		t.Error("disconnect should remove the control from the form")
	}
	if _, err := f.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after disconnect, got %v", err)
	}
}

func TestFormGet(t *testing.T) {
	f := New()
	a := control.NewText("a")
	f.AddControl(a)

	got, err := f.Get("a")
	if err != nil || got != control.Control(a) {
		t.Errorf("expected control a, got %v, %v", got, err)
	}

	if _, err := f.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFormAddNilPanics(t *testing.T) {
	f := New()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil control")
		}
	}()
	f.AddControl(nil)
}

func TestFormMembershipRetriggersAggregates(t *testing.T) {
	f := New()
	runs := 0

	reactive.NewEffect(func() reactive.Cleanup {
		_ = f.RxValid().Get()
		runs++
		return nil
	})

	a := control.NewText("a")
	a.SetRequired(true)
	f.AddControl(a)

	if !f.Invalid() {
		t.Error("adding an invalid control should flip form validity")
	}
	if runs < 2 {
		t.Errorf("membership change should retrigger the validity stream, got %d runs", runs)
	}
}

func TestFormSubmitGating(t *testing.T) {
	f := New()
	a := control.NewText("a")
	a.SetRequired(true)
	f.AddControl(a)

	var submissions []map[string]any
	f.OnSubmit(func(values map[string]any) {
		submissions = append(submissions, values)
	})

	// Invalid form: submission dropped, but every control is touched
	if _, ok := f.Submit(); ok {
		t.Error("invalid form should drop the submission")
	}
	if !a.Touched() {
		t.Error("submit should mark controls touched before the validity gate")
	}
	if len(submissions) != 0 {
		t.Errorf("expected no submissions, got %d", len(submissions))
	}

	a.SetValue("x")
	values, ok := f.Submit()
	if !ok {
		t.Fatal("valid form should accept the submission")
	}
	if values["a"] != "x" {
		t.Errorf("expected snapshot a=x, got %v", values)
	}
	if len(submissions) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(submissions))
	}
}

func TestFormSubmitRepeatedIdenticalValues(t *testing.T) {
	f := New()
	a := control.NewText("a")
	a.SetValue("x")
	f.AddControl(a)

	count := 0
	f.OnSubmit(func(map[string]any) { count++ })

	f.Submit()
	f.Submit()

	// Equal snapshots are still distinct submissions
	if count != 2 {
		t.Errorf("expected 2 submissions, got %d", count)
	}
}

func TestFormSubmitSequence(t *testing.T) {
	f := New()

	f.Submit()
	first := f.RxSubmit().Get()
	f.Submit()
	second := f.RxSubmit().Get()

	if first.Seq == 0 || second.Seq != first.Seq+1 {
		t.Errorf("submission sequence should increment, got %d then %d", first.Seq, second.Seq)
	}
}

func TestFormDisposeStopsSubscriptions(t *testing.T) {
	f := New()
	count := 0
	f.OnSubmit(func(map[string]any) { count++ })

	f.Dispose()
	f.Submit()

	if count != 0 {
		t.Errorf("disposed form should not notify, got %d", count)
	}
}

func TestFormScopeIntegration(t *testing.T) {
	f := New()

	plan := control.AttachRadio(f.Scope(), "input-1", "plan")
	control.AttachRadio(f.Scope(), "input-2", "plan")
	f.AddControl(plan)

	plan.SetValue("pro")
	if f.Values()["plan"] != "pro" {
		t.Errorf("expected plan=pro, got %v", f.Values()["plan"])
	}

	// Last physical input detaching disconnects the logical control and
	// removes it from the form
	f.Scope().Detach("input-1")
	f.Scope().Detach("input-2")

	if len(f.Controls()) != 0 {
		t.Error("disconnected logical control should leave the form")
	}
}
