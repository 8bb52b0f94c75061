package utils

import (
	"fmt"
)

// ContactSystemPrompt is sent as system message where the provider supports one
const ContactSystemPrompt = "You extract employer contact e-mail addresses from German job postings. Respond only with JSON."

const contactPromptFormat = `Find the e-mail addresses an applicant should use to contact the employer of the following job posting.
Addresses may be obfuscated, e.g. "bewerbung (at) firma [punkt] de". Return them in plain form.
Ignore addresses of job boards, the Bundesagentur für Arbeit and privacy or webmaster contacts.
Respond with a JSON object of the form {"emails": ["..."]}. Use an empty list if there is no address.

Employer: %s
Source: %s
Posting:
%s

Respond only with the JSON object and nothing else.`

// ContactPrompt formats the contact extraction prompt
func ContactPrompt(employer, sourceURL, body string) string {
	if employer == "" {
		employer = "unknown"
	}
	if sourceURL == "" {
		sourceURL = "unknown"
	}
	return fmt.Sprintf(contactPromptFormat, employer, sourceURL, body)
}
