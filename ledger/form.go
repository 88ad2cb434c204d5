package ledger

import "roadwaysledger/models"

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Form is the create/edit binding. editingID is zero in create mode.
type Form struct {
	values     models.BiltyDraft
	editingID  int64
	serial     string
	err        string
	submitting bool
}

func NewForm() *Form {
	f := &Form{}
	f.BeginCreate()
	return f
}

// BeginCreate clears every field and returns to create mode.
func (f *Form) BeginCreate() {
	f.values = blankDraft()
	f.editingID = 0
	f.serial = ""
	f.err = ""
}

// BeginEdit loads b into the fields and locks its serial number.
func (f *Form) BeginEdit(b models.Bilty) {
	f.values = b.Draft()
	f.editingID = b.ID
	f.serial = b.BiltySlNo
	f.err = ""
}

// Cancel leaves edit mode. It reports false in create mode.
func (f *Form) Cancel() bool {
	if f.editingID == 0 {
		return false
	}
	f.BeginCreate()
	return true
}

// read takes the submitted fields, keeping the locked serial in edit mode.
func (f *Form) read(input map[string]string) models.BiltyDraft {
	draft := make(models.BiltyDraft, len(models.FieldNames))
	for _, name := range models.FieldNames {
		draft[name] = input[name]
	}
	if f.editingID != 0 {
		draft["bilty_sl_no"] = f.serial
	}
	f.values = draft
	return draft.Clone()
}

func (f *Form) Mode() Mode {
	if f.editingID != 0 {
		return ModeEdit
	}
	return ModeCreate
}

func (f *Form) EditingID() int64 { return f.editingID }

func (f *Form) Values() models.BiltyDraft { return f.values.Clone() }

func (f *Form) Error() string { return f.err }

func (f *Form) Submitting() bool { return f.submitting }

func (f *Form) SerialLocked() bool { return f.editingID != 0 }

func (f *Form) Title() string {
	if f.editingID != 0 {
		return "Edit Record #" + f.serial
	}
	return "New Dispatch Record"
}

func (f *Form) SubmitLabel() string {
	if f.editingID != 0 {
		return "Update Record"
	}
	return "Save New Record"
}

func blankDraft() models.BiltyDraft {
	d := make(models.BiltyDraft, len(models.FieldNames))
	for _, name := range models.FieldNames {
		d[name] = ""
	}
	return d
}
