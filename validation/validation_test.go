package validation

import (
	"testing"

	"github.com/skillsenselab/pulse/errors"
)

type triggerPayload struct {
	Kind    string `json:"kind" validate:"required"`
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"max=2000"`
}

func TestValidate_OK(t *testing.T) {
	p := triggerPayload{Kind: "notification", Title: "New like"}
	if err := Validate(p); err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	p := triggerPayload{Content: "hello"}
	err := Validate(p)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", errors.ErrCodeInvalidInput, appErr.Code)
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatal("expected fields detail")
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors (kind, title), got %d", len(fields))
	}
	for _, fe := range fields {
		if fe.Field != "kind" && fe.Field != "title" {
			t.Errorf("unexpected field in errors: %s", fe.Field)
		}
	}
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	type body struct {
		TargetSubscriberID string `json:"targetSubscriberId" validate:"required"`
	}
	err := Validate(body{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, _ := errors.AsAppError(err)
	fields := appErr.Details["fields"].([]FieldError)
	if fields[0].Field != "targetSubscriberId" {
		t.Errorf("expected json tag name 'targetSubscriberId', got '%s'", fields[0].Field)
	}
}
