package control

// Radio is the logical control shared by a group of physical radio
// inputs with the same name within one scope. Its value is the selected
// option, empty when nothing is selected.
type Radio struct {
	*Base[string]
}

// NewRadio creates a fresh (not yet shared) radio control with the given
// name. Use AttachRadio to resolve it against a scope.
func NewRadio(name string) *Radio {
	return &Radio{
		Base: NewBase(name, "", func(s string) bool { return s != "" }),
	}
}

// AttachRadio resolves the logical radio control for name within scope,
// registering member as a physical input. The first physical input for a
// name creates the logical control; later ones share it.
func AttachRadio(scope *Scope, member any, name string) *Radio {
	resolved := scope.Attach(member, NewRadio(name))
	r, ok := resolved.(*Radio)
	if !ok {
		panic("control: name " + name + " is grouped under a non-radio control")
	}
	return r
}
