package control

import (
	"testing"
)

func TestTextLengthValidators(t *testing.T) {
	c := NewText("username")
	c.SetMinLength(3)
	c.SetMaxLength(8)

	// Empty passes length checks; Required handles emptiness
	if !c.Valid() {
		t.Errorf("empty value should pass length checks, errors %v", c.Errors())
	}

	c.SetValue("ab")
	if got := c.Errors(); len(got) != 1 || got[0] != "minlength" {
		t.Errorf("expected errors [minlength], got %v", got)
	}

	c.SetValue("abcdefghij")
	if got := c.Errors(); len(got) != 1 || got[0] != "maxlength" {
		t.Errorf("expected errors [maxlength], got %v", got)
	}

	c.SetValue("abcd")
	if !c.Valid() {
		t.Errorf("in-range value should be valid, errors %v", c.Errors())
	}
}

func TestTextPattern(t *testing.T) {
	c := NewText("code")
	c.SetPattern(`^[A-Z]{3}$`)

	c.SetValue("abc")
	if c.Valid() {
		t.Error("non-matching value should fail pattern")
	}

	c.SetValue("ABC")
	if !c.Valid() {
		t.Errorf("matching value should pass, errors %v", c.Errors())
	}
}

func TestTextBadPatternPanics(t *testing.T) {
	c := NewText("code")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid pattern")
		}
	}()
	c.SetPattern(`[`)
}

func TestCheckboxSetSemantics(t *testing.T) {
	c := NewCheckbox("terms")

	if c.IsSet() {
		t.Error("unchecked checkbox should not count as set")
	}

	c.Toggle()
	if !c.Value() || !c.IsSet() {
		t.Error("checked checkbox should count as set")
	}

	c.Toggle()
	if c.Value() {
		t.Error("toggle should flip back")
	}
}

func TestCheckboxRequired(t *testing.T) {
	c := NewCheckbox("terms")
	c.SetRequired(true)

	if c.Valid() {
		t.Error("required unchecked checkbox should be invalid")
	}

	c.SetValue(true)
	if !c.Valid() {
		t.Errorf("required checked checkbox should be valid, errors %v", c.Errors())
	}
}

func TestSelectOptions(t *testing.T) {
	c := NewSelect("country")
	c.SetOptions("us", "ca")

	if !c.Valid() {
		t.Errorf("empty selection should pass option check, errors %v", c.Errors())
	}

	c.SetValue("de")
	if got := c.Errors(); len(got) != 1 || got[0] != "option" {
		t.Errorf("expected errors [option], got %v", got)
	}

	c.SetValue("ca")
	if !c.Valid() {
		t.Errorf("allowed option should be valid, errors %v", c.Errors())
	}
}

func TestMultiSelectOptions(t *testing.T) {
	c := NewMultiSelect("tags")
	c.SetOptions("go", "web")

	c.SetValue([]string{"go", "rust"})
	if got := c.Errors(); len(got) != 1 || got[0] != "option" {
		t.Errorf("expected errors [option], got %v", got)
	}

	c.SetValue([]string{"go", "web"})
	if !c.Valid() {
		t.Errorf("allowed options should be valid, errors %v", c.Errors())
	}
}

func TestMultiSelectSelectionBounds(t *testing.T) {
	c := NewMultiSelect("tags")
	c.SetMinSelected(2)
	c.SetMaxSelected(3)

	if !c.Valid() {
		t.Errorf("empty selection should pass bounds, errors %v", c.Errors())
	}

	c.SetValue([]string{"a"})
	if got := c.Errors(); len(got) != 1 || got[0] != "minselected" {
		t.Errorf("expected errors [minselected], got %v", got)
	}

	c.SetValue([]string{"a", "b", "c", "d"})
	if got := c.Errors(); len(got) != 1 || got[0] != "maxselected" {
		t.Errorf("expected errors [maxselected], got %v", got)
	}

	c.SetValue([]string{"a", "b"})
	if !c.Valid() {
		t.Errorf("in-bounds selection should be valid, errors %v", c.Errors())
	}
}

func TestMultiSelectSetSemantics(t *testing.T) {
	c := NewMultiSelect("tags")

	if c.IsSet() {
		t.Error("empty selection should not count as set")
	}

	c.SetValue([]string{"a"})
	if !c.IsSet() {
		t.Error("non-empty selection should count as set")
	}
}

func TestFileValueIsUploadReference(t *testing.T) {
	c := NewFile("avatar")

	if c.IsSet() {
		t.Error("file control without upload should not count as set")
	}

	c.SetValue("tmp-abc123")
	if !c.IsSet() {
		t.Error("file control with temp ID should count as set")
	}
	if got, _ := c.AnyValue().(string); got != "tmp-abc123" {
		t.Errorf("snapshot value should be the temp ID, got %v", c.AnyValue())
	}
}

func TestRadioValueSemantics(t *testing.T) {
	r := NewRadio("color")

	if r.IsSet() {
		t.Error("unselected radio should not count as set")
	}

	r.SetValue("red")
	if !r.IsSet() || r.Value() != "red" {
		t.Error("selected radio should hold the option value")
	}
}
