// Package live serves forms over WebSocket.
//
// It is the I/O adapter around the reactive core: client messages
// (set/touch/submit) play the role of attribute changes and input events
// on physical elements, and the derived form state (valid, values,
// errors) is pushed back after every event. The core packages know
// nothing about the transport; live depends only on the Control and Form
// surfaces.
//
// A Server mounts on chi:
//
//	srv := live.New(&live.Config{NewForm: buildForm})
//	r := chi.NewRouter()
//	r.Mount("/", srv.Router())
//
// Each WebSocket connection gets its own form instance; the form and all
// its controls are disconnected when the connection closes.
package live
