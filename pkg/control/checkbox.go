package control

// Checkbox is a boolean input control. Its value counts as set when
// checked, which gives required the expected "must be checked" meaning.
type Checkbox struct {
	*Base[bool]
}

// NewCheckbox creates a checkbox control with the given name.
func NewCheckbox(name string) *Checkbox {
	return &Checkbox{
		Base: NewBase(name, false, func(v bool) bool { return v }),
	}
}

// Toggle flips the checkbox value.
func (c *Checkbox) Toggle() {
	c.SetValue(!c.Value())
}
