package layout

import "maps"

// FormState holds the live values of a page's form controls, keyed by
// field name. Editing names the text field being edited, if any.
type FormState struct {
	Fields     map[string]string
	Checkboxes map[string]bool
	Radios     map[string]string
	Editing    string
}

func NewFormState() *FormState {
	return &FormState{
		Fields:     map[string]string{},
		Checkboxes: map[string]bool{},
		Radios:     map[string]string{},
	}
}

// Reset forgets every value.
func (f *FormState) Reset() {
	clear(f.Fields)
	clear(f.Checkboxes)
	clear(f.Radios)
	f.Editing = ""
}

func (f *FormState) Clone() *FormState {
	return &FormState{
		Fields:     maps.Clone(f.Fields),
		Checkboxes: maps.Clone(f.Checkboxes),
		Radios:     maps.Clone(f.Radios),
		Editing:    f.Editing,
	}
}

// Seed records the document value of every control in hitboxes whose name
// has no value yet and returns how many names it added. A radio group takes
// its checked button, or the first one seen when none is checked.
func (f *FormState) Seed(hitboxes []Hitbox) int {
	added := 0
	first := map[string]string{}
	checked := map[string]string{}
	for _, hb := range hitboxes {
		switch t := hb.Target.(type) {
		case TextFieldTarget:
			if _, ok := f.Fields[t.Name]; !ok {
				f.Fields[t.Name] = t.Default
				added++
			}
		case CheckboxTarget:
			if _, ok := f.Checkboxes[t.Name]; !ok {
				f.Checkboxes[t.Name] = t.Checked
				added++
			}
		case RadioTarget:
			if _, ok := first[t.Name]; !ok {
				first[t.Name] = t.Value
			}
			if _, ok := checked[t.Name]; !ok && t.Checked {
				checked[t.Name] = t.Value
			}
		}
	}
	for name, value := range first {
		if _, ok := f.Radios[name]; ok {
			continue
		}
		if v, ok := checked[name]; ok {
			value = v
		}
		f.Radios[name] = value
		added++
	}
	return added
}

// Has reports whether name belongs to any control in the form.
func (f *FormState) Has(name string) bool {
	if _, ok := f.Fields[name]; ok {
		return true
	}
	if _, ok := f.Checkboxes[name]; ok {
		return true
	}
	_, ok := f.Radios[name]
	return ok
}
