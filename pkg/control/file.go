package control

// File is a file input control. Its value is the temp ID handed out by
// an upload store when the client uploaded the file out of band; empty
// means no file chosen. The form value snapshot therefore carries a
// claimable reference, not file bytes.
type File struct {
	*Base[string]
}

// NewFile creates a file control with the given name.
func NewFile(name string) *File {
	return &File{
		Base: NewBase(name, "", func(s string) bool { return s != "" }),
	}
}
