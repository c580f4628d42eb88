package constant

import (
	"fmt"
	"strings"
)

const (
	ChatMessageSenderUser = "user"
	ChatMessageSenderBot  = "bot"
)

// RoleStyle shapes how the coach conducts the interview for one skill
// or role tag.
type RoleStyle struct {
	Approach string
	Focus    string
	Tone     string
}

// roleStyles is data, not branching code: adding a role is an extra
// entry, unmatched roles fall back to the technical style.
var roleStyles = map[string]RoleStyle{
	"technical": {
		Approach: "technical problem-solving",
		Focus:    "coding challenges, system design, debugging scenarios",
		Tone:     "collaborative and analytical",
	},
	"behavioral": {
		Approach: "experience-based questions",
		Focus:    "past projects, teamwork, challenges overcome",
		Tone:     "conversational and reflective",
	},
	"leadership": {
		Approach: "leadership scenarios and decision-making",
		Focus:    "team management, strategic thinking, conflict resolution",
		Tone:     "professional and inspiring",
	},
	"presentation": {
		Approach: "communication and presentation skills",
		Focus:    "public speaking, stakeholder communication, storytelling",
		Tone:     "encouraging and supportive",
	},
}

// StyleForRole returns the style for a role id, defaulting to the
// technical style for free-form job role strings.
func StyleForRole(role string) RoleStyle {
	if style, ok := roleStyles[role]; ok {
		return style
	}
	return roleStyles["technical"]
}

const interviewGuidelines = `IMPORTANT GUIDELINES:
1. Be conversational and natural, not robotic or textbook-like
2. Ask ONE question at a time and wait for the candidate's response
3. Provide specific, constructive feedback on their answers
4. Ask follow-up questions based on their responses
5. Keep responses concise (2-4 sentences max)
6. Be encouraging but professional
7. Adapt your questions based on the conversation flow
8. Do NOT repeat questions already asked in this session. Always generate a new, relevant question based on the conversation so far.
9. Each question should be clearly structured, focused on one topic, and easy to understand. Use bullet points or numbered lists if helpful. Avoid vague or overly broad questions.`

// HistoryTurn is one prior exchange included for context.
type HistoryTurn struct {
	Sender string // ChatMessageSenderUser or ChatMessageSenderBot
	Text   string
}

// BuildInterviewPrompt assembles the full instruction prompt for one
// chat turn. The output is deterministic for a given input tuple; any
// randomness in replies comes from the model's sampling parameters,
// never from prompt assembly.
func BuildInterviewPrompt(role, roleContext, message string, history []HistoryTurn) string {
	style := StyleForRole(role)

	var sb strings.Builder
	fmt.Fprintf(&sb,
		"You are an expert mock interview coach conducting a %s interview. Your focus is on %s. Maintain a %s tone.",
		style.Approach, style.Focus, style.Tone)

	if roleContext != "" {
		sb.WriteString("\n\n")
		sb.WriteString(roleContext)
	}

	sb.WriteString("\n\n")
	sb.WriteString(interviewGuidelines)

	fmt.Fprintf(&sb, `

INTERVIEW STYLE:
- Start with a warm, professional greeting
- Ask specific, practical questions relevant to %s
- If they answer well, acknowledge it and ask a follow-up
- If they struggle, provide gentle guidance and ask a simpler question
- Make the conversation feel like a real interview, not a quiz
- Keep all content professional, appropriate, and workplace-friendly
- Avoid any content that could be considered inappropriate or offensive`, role)

	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:")
		for _, turn := range history {
			label := "Candidate"
			if turn.Sender == ChatMessageSenderBot {
				label = "Coach"
			}
			fmt.Fprintf(&sb, "\n%s: %s", label, turn.Text)
		}
	}

	fmt.Fprintf(&sb, "\n\nCurrent skill area: %s\nUser message: %q", role, message)

	sb.WriteString("\n\nRespond as a helpful, engaging interview coach. If this is the first message, start the interview naturally. If they've answered a question, provide feedback and ask the next relevant question.")

	return sb.String()
}
