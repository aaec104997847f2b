package sms

import (
	"testing"
	"time"
)

func fieldNames(errs []FieldError) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestCampaignInputValidate(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		in         CampaignInput
		wantFields []string
	}{
		{
			name:       "empty input warns on name and message",
			in:         CampaignInput{},
			wantFields: []string{"name", "message"},
		},
		{
			name: "complete input is clean",
			in:   CampaignInput{Name: "n", Message: "m", TargetAudience: "all", ScheduledDate: &future},
		},
		{
			name:       "unknown audience",
			in:         CampaignInput{Name: "n", Message: "m", TargetAudience: "vip"},
			wantFields: []string{"target_audience"},
		},
		{
			name:       "past schedule",
			in:         CampaignInput{Name: "n", Message: "m", ScheduledDate: &past},
			wantFields: []string{"scheduled_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.in.Validate()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %v, want fields %v", fieldNames(errs), tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if !hasField(errs, f) {
					t.Errorf("missing warning for field %q in %v", f, fieldNames(errs))
				}
			}
		})
	}
}

func TestContactInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		field string
	}{
		{"empty", "", "phone_number"},
		{"letters", "call-me", "phone_number"},
		{"too short", "+12345", "phone_number"},
		{"leading zero", "0123456789", "phone_number"},
		{"valid e164", "+15551234567", ""},
		{"valid without plus", "15551234567", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ContactInput{PhoneNumber: tt.phone}.Validate()
			if tt.field == "" {
				if len(errs) != 0 {
					t.Errorf("unexpected warnings: %v", fieldNames(errs))
				}
				return
			}
			if !hasField(errs, tt.field) {
				t.Errorf("want warning on %q, got %v", tt.field, fieldNames(errs))
			}
		})
	}
}

func TestTemplateInputValidate(t *testing.T) {
	errs := TemplateInput{}.Validate()
	if !hasField(errs, "title") || !hasField(errs, "message") {
		t.Errorf("empty template input should warn on title and message, got %v", fieldNames(errs))
	}

	if errs := (TemplateInput{Title: "t", Message: "m"}).Validate(); len(errs) != 0 {
		t.Errorf("unexpected warnings: %v", fieldNames(errs))
	}
}

func TestInputNormalizeDefaults(t *testing.T) {
	ci := CampaignInput{}
	ci.normalize()
	if ci.EmotionType != "message" || ci.TargetAudience != "all" {
		t.Errorf("campaign defaults = %q/%q, want message/all", ci.EmotionType, ci.TargetAudience)
	}

	coi := ContactInput{}
	coi.normalize()
	if coi.Tags == nil {
		t.Error("contact tags should default to an empty slice")
	}

	ti := TemplateInput{}
	ti.normalize()
	if ti.EmotionType != "message" {
		t.Errorf("template emotion default = %q, want message", ti.EmotionType)
	}
}
