package live

import (
	"encoding/json"
	"fmt"

	"github.com/formwork-dev/formwork/pkg/control"
	"github.com/formwork-dev/formwork/pkg/form"
)

// Event is one client message: a physical interaction with a named
// control, or a submit trigger.
type Event struct {
	// Type is "set", "touch" or "submit".
	Type string `json:"type"`

	// Control names the target control. Unused for submit.
	Control string `json:"control,omitempty"`

	// Value carries the new value for set events. Its JSON shape depends
	// on the control type: string for text-like controls, bool for
	// checkboxes, array of strings for multi-selects. Number and
	// date-time controls receive the raw string and parse it themselves.
	Value json.RawMessage `json:"value,omitempty"`
}

// State is the snapshot pushed to the client after every event.
type State struct {
	Valid  bool                `json:"valid"`
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors"`

	// Submitted carries the accepted submission when the triggering
	// event was a valid submit, and is null otherwise.
	Submitted map[string]any `json:"submitted,omitempty"`
}

// apply routes one event into the form. It returns the accepted
// submission snapshot for a valid submit, or nil.
func apply(f *form.Form, ev Event) (map[string]any, error) {
	switch ev.Type {
	case "submit":
		// Marks every control touched before the validity gate; an
		// invalid-at-trigger submission is dropped here, which is also
		// what suppresses the native submission side channel.
		snapshot, ok := f.Submit()
		if !ok {
			return nil, nil
		}
		return snapshot, nil

	case "touch":
		c, err := f.Get(ev.Control)
		if err != nil {
			return nil, err
		}
		c.MarkTouched()
		return nil, nil

	case "set":
		c, err := f.Get(ev.Control)
		if err != nil {
			return nil, err
		}
		return nil, applyValue(c, ev.Value)

	default:
		return nil, fmt.Errorf("live: unknown event type %q", ev.Type)
	}
}

// applyValue decodes and publishes a value per the control's type.
// Raw-input controls (number, date-time) always go through their own
// parser so parsing happens before any validator runs.
func applyValue(c control.Control, raw json.RawMessage) error {
	switch ctrl := c.(type) {
	case *control.Number:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("live: number value: %w", err)
		}
		ctrl.SetRaw(s)

	case *control.DateTime:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("live: date-time value: %w", err)
		}
		ctrl.SetRaw(s)

	case *control.Checkbox:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return fmt.Errorf("live: checkbox value: %w", err)
		}
		ctrl.SetValue(b)

	case *control.MultiSelect:
		var vs []string
		if err := json.Unmarshal(raw, &vs); err != nil {
			return fmt.Errorf("live: multi-select value: %w", err)
		}
		ctrl.SetValue(vs)

	case *control.Text:
		return setString(ctrl.Base, raw)
	case *control.TextArea:
		return setString(ctrl.Base, raw)
	case *control.Radio:
		return setString(ctrl.Base, raw)
	case *control.Select:
		return setString(ctrl.Base, raw)
	case *control.File:
		return setString(ctrl.Base, raw)

	default:
		return fmt.Errorf("live: control %q has unsupported type", c.Name())
	}
	return nil
}

func setString(b *control.Base[string], raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("live: string value: %w", err)
	}
	b.SetValue(s)
	return nil
}
