package domain

import (
	"encoding/json"
	"strings"
)

// Todo is an item of the remote todo list. The server owns it; OnCheckList
// is the checklist flag and round-trips through the API on every update.
type Todo struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	OnCheckList bool   `json:"onCheckList"`
}

// UnmarshalJSON also accepts the server's legacy "status" field as the
// checklist flag when "onCheckList" is absent.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID          string `json:"_id"`
		Text        string `json:"text"`
		OnCheckList *bool  `json:"onCheckList"`
		Status      *bool  `json:"status"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.ID = wire.ID
	t.Text = wire.Text
	t.OnCheckList = BoolFromPtrWithDefault(false, wire.OnCheckList, wire.Status)
	return nil
}

// ValidateTodoText rejects blank todo text before it is submitted.
func ValidateTodoText(text string) error {
	if strings.TrimSpace(text) == "" {
		return invalid("text", "todo text is required")
	}
	return nil
}

// Session is the authenticated user record kept between runs.
type Session struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Token    string `json:"token"`
	Status   bool   `json:"status"`
}

// Active reports whether the session can authorize API calls.
func (s *Session) Active() bool {
	return s != nil && s.Status && s.Token != ""
}
