package sms

import (
	"regexp"
	"time"

	"github.com/flutterbye/sms-engine/internal/domain"
)

// FieldError describes one problem found by input validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CampaignInput is the caller-supplied subset of campaign attributes.
type CampaignInput struct {
	Name           string     `json:"name"`
	Message        string     `json:"message"`
	EmotionType    string     `json:"emotion_type"`
	TargetAudience string     `json:"target_audience"`
	ScheduledDate  *time.Time `json:"scheduled_date"`
}

func (in *CampaignInput) normalize() {
	if in.EmotionType == "" {
		in.EmotionType = "message"
	}
	if in.TargetAudience == "" {
		in.TargetAudience = domain.AudienceAll
	}
}

// Validate reports problems with the input. Creation never rejects (missing
// fields are defaulted), so these are warnings for the caller, not errors.
func (in CampaignInput) Validate() []FieldError {
	var errs []FieldError
	if in.Name == "" {
		errs = append(errs, FieldError{"name", "campaign name is empty"})
	}
	if in.Message == "" {
		errs = append(errs, FieldError{"message", "message body is empty"})
	}
	switch in.TargetAudience {
	case "", domain.AudienceAll, domain.AudienceHighEngagement,
		domain.AudienceRecentActivity, domain.AudienceNewContacts:
	default:
		errs = append(errs, FieldError{"target_audience", "unknown audience selector, falling back to all contacts"})
	}
	if in.ScheduledDate != nil && in.ScheduledDate.Before(time.Now()) {
		errs = append(errs, FieldError{"scheduled_date", "scheduled date is in the past"})
	}
	return errs
}

// ContactInput is the caller-supplied subset of contact attributes.
type ContactInput struct {
	PhoneNumber string     `json:"phone_number"`
	Name        string     `json:"name"`
	Tags        []string   `json:"tags"`
	LastContact *time.Time `json:"last_contact"`
}

func (in *ContactInput) normalize() {
	if in.Tags == nil {
		in.Tags = []string{}
	}
}

var e164Regex = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)

// Validate reports problems with the input. Like campaigns, contact creation
// never rejects; a malformed phone number is stored as given.
func (in ContactInput) Validate() []FieldError {
	var errs []FieldError
	if in.PhoneNumber == "" {
		errs = append(errs, FieldError{"phone_number", "phone number is empty"})
	} else if !e164Regex.MatchString(in.PhoneNumber) {
		errs = append(errs, FieldError{"phone_number", "phone number is not in E.164 format"})
	}
	return errs
}

// TemplateInput is the caller-supplied subset of template attributes.
type TemplateInput struct {
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	EmotionType string   `json:"emotion_type"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublic    bool     `json:"is_public"`
	CreatedBy   string   `json:"created_by"`
}

func (in *TemplateInput) normalize() {
	if in.EmotionType == "" {
		in.EmotionType = "message"
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
}

// Validate reports problems with the input.
func (in TemplateInput) Validate() []FieldError {
	var errs []FieldError
	if in.Title == "" {
		errs = append(errs, FieldError{"title", "template title is empty"})
	}
	if in.Message == "" {
		errs = append(errs, FieldError{"message", "message body is empty"})
	}
	return errs
}
