// Package render previews SMS message bodies with Liquid personalization.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/flutterbye/sms-engine/internal/domain"
)

// Mode determines how the engine handles missing variables.
type Mode int

const (
	// ModeLax renders what it can and leaves missing vars empty.
	ModeLax Mode = iota
	// ModeStrict flags undefined variables (used for previews).
	ModeStrict
)

// ValidationError flags a variable a recipient might not have.
type ValidationError struct {
	Variable string `json:"variable"`
	Message  string `json:"message"`
}

// Result contains the rendered output and any warnings.
type Result struct {
	Output   string            `json:"output"`
	Warnings []ValidationError `json:"warnings,omitempty"`
	Success  bool              `json:"success"`
}

// Engine renders Liquid message templates with parse caching.
type Engine struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewEngine creates an engine with the SMS filter set registered.
func NewEngine() *Engine {
	e := &Engine{engine: liquid.NewEngine()}
	e.registerFilters()
	return e
}

func (e *Engine) registerFilters() {
	// {{ first_name | default: "Friend" }}
	e.engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		strVal := fmt.Sprintf("%v", value)
		if strVal == "" || strVal == "<nil>" {
			return defaultVal
		}
		return value
	})

	// {{ first_name | capitalize }}
	e.engine.RegisterFilter("capitalize", func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(string(s[0])) + strings.ToLower(s[1:])
	})

	// SMS segments are 160 chars; {{ body | truncate: 160 }}
	e.engine.RegisterFilter("truncate", func(s string, length int) string {
		if len(s) <= length {
			return s
		}
		if length <= 3 {
			return s[:length]
		}
		return s[:length-3] + "..."
	})
}

// ContactContext builds the personalization variables for one recipient.
func ContactContext(c *domain.Contact) map[string]interface{} {
	ctx := map[string]interface{}{
		"first_name":   "",
		"name":         "",
		"phone_number": "",
	}
	if c == nil {
		return ctx
	}
	ctx["name"] = c.Name
	ctx["phone_number"] = c.PhoneNumber
	if parts := strings.Fields(c.Name); len(parts) > 0 {
		ctx["first_name"] = parts[0]
	}
	ctx["engagement_score"] = c.EngagementScore
	return ctx
}

// Render processes a template with the given context, reusing parsed
// templates across calls with the same cache key.
func (e *Engine) Render(cacheKey, templateStr string, ctx map[string]interface{}) (string, error) {
	if cached, ok := e.cache.Load(cacheKey); ok {
		tpl := cached.(*liquid.Template)
		out, err := tpl.RenderString(ctx)
		if err != nil {
			return "", fmt.Errorf("render template: %w", err)
		}
		return out, nil
	}

	tpl, err := e.engine.ParseString(templateStr)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	e.cache.Store(cacheKey, tpl)

	out, err := tpl.RenderString(ctx)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// RenderWithMode renders without caching. Strict mode additionally reports
// variables the context does not define; it still renders what it can.
func (e *Engine) RenderWithMode(templateStr string, ctx map[string]interface{}, mode Mode) (*Result, error) {
	result := &Result{
		Success:  true,
		Warnings: []ValidationError{},
	}

	if mode == ModeStrict {
		result.Warnings = e.ValidateVariables(templateStr, ctx)
		if len(result.Warnings) > 0 {
			result.Success = false
		}
	}

	output, err := e.engine.ParseAndRenderString(templateStr, ctx)
	if err != nil {
		if mode == ModeStrict {
			return result, fmt.Errorf("render template: %w", err)
		}
		// Lax mode falls back to the raw template text.
		result.Output = templateStr
		result.Success = false
		return result, nil
	}

	result.Output = output
	return result, nil
}

var varPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_.]*?)(?:\s*\||\s*\}\})`)

// ValidateVariables checks for variables the context does not define.
func (e *Engine) ValidateVariables(templateStr string, ctx map[string]interface{}) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for _, match := range varPattern.FindAllStringSubmatch(templateStr, -1) {
		if len(match) < 2 {
			continue
		}
		varName := strings.TrimSpace(match[1])
		if seen[varName] {
			continue
		}
		seen[varName] = true

		if !variableExists(varName, ctx) {
			errs = append(errs, ValidationError{
				Variable: varName,
				Message:  fmt.Sprintf("Variable '%s' may not be defined for all contacts", varName),
			})
		}
	}
	return errs
}

func variableExists(varPath string, ctx map[string]interface{}) bool {
	parts := strings.Split(varPath, ".")

	var current interface{} = ctx
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return false
		}
		current, ok = m[part]
		if !ok {
			return false
		}
	}
	return true
}

// ClearCache drops all parsed templates.
func (e *Engine) ClearCache() {
	e.cache = sync.Map{}
}
