package mailmate

import (
	"encoding/json"
	"io"
)

// Action types understood by MailMate.
const (
	ActionCreateMessage = "createMessage"
	ActionOpenMessage   = "openMessage"
	ActionNotify        = "notify"
)

// Document is the JSON a bundle command prints for MailMate to execute.
type Document struct {
	Actions []Action `json:"actions"`
}

// Action is one MailMate action. Only the fields relevant to Type are set.
type Action struct {
	Type          string   `json:"type"`
	Headers       *Headers `json:"headers,omitempty"`
	Body          string   `json:"body,omitempty"`
	ResultActions []Action `json:"resultActions,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// Headers of a message created by a createMessage action.
type Headers struct {
	Subject     string `json:"subject"`
	To          string `json:"to"`
	From        string `json:"from"`
	ContentType string `json:"content-type"`
}

// ReplySubject prefixes subject with "Re: ". An existing prefix is not
// detected, so "Re: Hello" becomes "Re: Re: Hello".
func ReplySubject(subject string) string {
	return "Re: " + subject
}

// NewDraftDocument creates a reply draft carrying body and opens it.
func NewDraftDocument(email EmailContext, body string) *Document {
	return &Document{Actions: []Action{{
		Type: ActionCreateMessage,
		Headers: &Headers{
			Subject:     ReplySubject(email.Subject),
			To:          email.To,
			From:        email.From,
			ContentType: email.ContentType,
		},
		Body:          body,
		ResultActions: []Action{{Type: ActionOpenMessage}},
	}}}
}

// NewNotifyDocument shows message to the user instead of creating a draft.
func NewNotifyDocument(message string) *Document {
	return &Document{Actions: []Action{{
		Type:    ActionNotify,
		Message: message,
	}}}
}

// Encode writes d as one line of JSON. HTML in bodies is written verbatim.
func (d *Document) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(d)
}
