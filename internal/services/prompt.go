package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

// DefaultLetterSystemPrompt is used when no letter_intent_config setting
// row exists.
const DefaultLetterSystemPrompt = "You are a professional visa consultant. Write a formal letter of intent for a visa application. The letter should be professional, clear, and persuasive."

// BuildLetterPrompt assembles the prompt for automatic letter generation:
// system prompt, serialized application fields, then the reference examples
// and a fixed closing instruction asking for bare HTML.
func BuildLetterPrompt(systemPrompt string, app *types.Application, examples []string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	b.WriteString("Application Data:\n")
	b.WriteString(serializeApplicationData(app))
	b.WriteString("\n\n")

	if len(examples) > 0 {
		b.WriteString("Here are example letters for reference:\n\n")
		for i, example := range examples {
			fmt.Fprintf(&b, "--- Example %d ---\n%s\n\n", i+1, example)
		}
	}

	b.WriteString("Generate a professional letter of intent in HTML format. Use proper HTML tags (h1, p, strong, etc.) for formatting. Do not include <html>, <head>, or <body> tags - just the inner content.")
	return b.String()
}

// BuildManualLetterPrompt assembles the prompt for the operator-driven
// letter endpoint, where the caller supplies everything.
func BuildManualLetterPrompt(systemPrompt string, examples []string, applicationData map[string]any) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	if len(examples) > 0 {
		b.WriteString("Here are examples of successful letters of intent:\n\n")
		for i, example := range examples {
			fmt.Fprintf(&b, "--- Example %d ---\n%s\n\n", i+1, example)
		}
	}

	b.WriteString("--- Application Data ---\n")
	serialized, err := json.MarshalIndent(applicationData, "", "  ")
	if err != nil {
		serialized = []byte("{}")
	}
	b.Write(serialized)
	b.WriteString("\n\n")
	b.WriteString("Write a letter of intent for this applicant based on the examples above. Output as clean HTML with <p>, <strong>, <em> tags only. Do not include markdown formatting.")
	return b.String()
}

func serializeApplicationData(app *types.Application) string {
	data := map[string]any{
		"full_name": app.FullName,
		"country":   app.Country,
		"visa_type": app.VisaType,
		"email":     app.Email,
		"phone":     app.Phone,
	}
	if app.TravelDate != nil {
		data["travel_date"] = app.TravelDate.Format("2006-01-02")
	} else {
		data["travel_date"] = nil
	}
	if len(app.CustomFields) > 0 {
		var cf map[string]any
		if err := json.Unmarshal(app.CustomFields, &cf); err == nil {
			data["custom_fields"] = cf
		}
	}
	serialized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(serialized)
}
