package cli

import (
	"errors"
	"fmt"

	"github.com/kampus/tugasin/internal/domain"
)

// fieldFlags maps validation fields to the flags that set them.
var fieldFlags = map[string]string{
	"title":    "title",
	"dueDate":  "due",
	"priority": "priority",
	"category": "category",
	"status":   "status",
	"subTasks": "subtask",
	"name":     "name",
	"url":      "url",
	"email":    "email",
	"fullName": "name",
	"password": "password",
	"start":    "start",
	"end":      "end",
	"theme":    "theme",
	"text":     "text",
}

// flagError rewrites a validation error so it names the flag to fix.
func flagError(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	flag, ok := fieldFlags[ve.Field]
	if !ok {
		return err
	}
	return &invalidFlagError{flag: flag, cause: ve}
}

type invalidFlagError struct {
	flag  string
	cause *domain.ValidationError
}

func (e *invalidFlagError) Error() string {
	return fmt.Sprintf("--%s: %s", e.flag, e.cause.Message)
}

func (e *invalidFlagError) Unwrap() error { return e.cause }
