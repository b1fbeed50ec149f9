package ai

import "strings"

// Kind names what the caller wants generated. Unknown kinds fall back to a
// general resume-writing prompt.
type Kind string

const (
	KindSummary Kind = "summary"
	KindBullets Kind = "bullets"
	KindSkills  Kind = "skills"
	KindGrammar Kind = "grammar"
	KindEnhance Kind = "enhance"
	KindShorten Kind = "shorten"
	KindExpand  Kind = "expand"
	KindATS     Kind = "ats"
)

const temperature = 0.4

const defaultInput = "Provide content."

var systemPrompts = map[Kind]string{
	KindSummary: "You generate concise resume summaries. Output 2-4 sentences.",
	KindBullets: "You generate strong resume bullets. Return 4-8 bullet lines separated by newlines.",
	KindSkills:  "You generate a comma-separated list of skills tailored to the role.",
	KindGrammar: "Fix grammar and spelling errors in the user's text. Return ONLY the corrected text without any explanations.",
	KindEnhance: "Improve and enhance the user's text to make it more professional and impactful for a resume. Return ONLY the enhanced text without any explanations.",
	KindShorten: "Make the user's text more concise while keeping the key information. Return ONLY the shortened text without any explanations.",
	KindExpand:  "Expand the user's text with more details while keeping it professional for a resume. Return ONLY the expanded text without any explanations.",
	KindATS:     "Rewrite the user's resume text so it parses cleanly in applicant tracking systems: plain wording, standard section terms, relevant keywords, no tables or symbols. Return ONLY the rewritten text.",
}

// SystemPrompt returns the instruction sent alongside the user's input.
func SystemPrompt(k Kind) string {
	if p, ok := systemPrompts[k]; ok {
		return p
	}
	return "Assist with resume text."
}

// Request is one generation call.
type Request struct {
	Kind  Kind   `json:"kind"`
	Input string `json:"input"`
}

func (r Request) input() string {
	if strings.TrimSpace(r.Input) == "" {
		return defaultInput
	}
	return r.Input
}

// cleanOutput strips the wrappers models like to add around plain text:
// surrounding whitespace, markdown code fences and, for bullet output, the
// leading list markers.
func cleanOutput(k Kind, text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if k != KindBullets {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		for _, marker := range []string{"- ", "* ", "• ", "– "} {
			if strings.HasPrefix(l, marker) {
				l = strings.TrimSpace(strings.TrimPrefix(l, marker))
				break
			}
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}
