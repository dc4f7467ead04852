package entity

// PendingEmail is an email being composed across several turns.
type PendingEmail struct {
	TaskID        string
	Recipient     string
	Subject       string
	Body          string
	AwaitingLogin bool
}

// Merge copies the non-empty values of update into e and reports whether
// any field changed. Existing values are never replaced by empty ones.
func (e *PendingEmail) Merge(update EmailFields) bool {
	changed := false
	set := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	set(&e.Recipient, update.Recipient)
	set(&e.Subject, update.Subject)
	set(&e.Body, update.Body)
	return changed
}

func (e *PendingEmail) Ready() bool {
	return e.Recipient != "" && e.Body != ""
}

// Missing returns the status of the first required field that is still empty.
func (e *PendingEmail) Missing() TaskStatus {
	switch {
	case e.Recipient == "":
		return StatusMissingRecipient
	case e.Body == "":
		return StatusMissingBody
	default:
		return ""
	}
}

// EmailFields holds values extracted from a single utterance.
type EmailFields struct {
	Recipient string
	Subject   string
	Body      string
}

func (f EmailFields) Empty() bool {
	return f.Recipient == "" && f.Subject == "" && f.Body == ""
}
