package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is the controller's UI state.
type Phase int

const (
	PhaseSelect Phase = iota // skill cards shown, no transcript yet
	PhaseResume              // a saved session exists, awaiting resume/new
	PhaseChat
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseResume:
		return "resume"
	default:
		return "chat"
	}
}

type Skill struct {
	Id       string
	Name     string
	Desc     string
	Examples string
}

var Skills = []Skill{
	{
		Id:       "technical",
		Name:     "Technical Skills",
		Desc:     "Coding challenges, system design, debugging scenarios",
		Examples: "Algorithms, data structures, system architecture",
	},
	{
		Id:       "behavioral",
		Name:     "Behavioral Questions",
		Desc:     "Past experiences, teamwork, problem-solving stories",
		Examples: "Leadership examples, conflict resolution, achievements",
	},
	{
		Id:       "leadership",
		Name:     "Leadership & Management",
		Desc:     "Team management, strategic decisions, vision setting",
		Examples: "Team building, decision-making, strategic planning",
	},
	{
		Id:       "presentation",
		Name:     "Presentation Skills",
		Desc:     "Public speaking, stakeholder communication, storytelling",
		Examples: "Pitch presentations, technical demos, executive summaries",
	},
}

func SkillById(id string) (Skill, bool) {
	for _, s := range Skills {
		if s.Id == id {
			return s, true
		}
	}
	return Skill{}, false
}

const WelcomeMessage = "Welcome to MockBot! I'm your advanced interview coach. Select a skill to begin."

var conversationStarters = map[string]string{
	"technical":    "Hi! I'm ready for a technical interview. I'd love to work through some coding problems or discuss system design. Please start with a warm greeting and an engaging technical question.",
	"behavioral":   "Hello! I'm here to practice behavioral interview questions. I'm ready to share examples from my experience and discuss how I handle various workplace situations. Please start naturally.",
	"leadership":   "Hi there! I'm excited to practice leadership interview questions. I'm ready to discuss my leadership style, team management experiences, and strategic thinking. Please begin the interview.",
	"presentation": "Hello! I'm here to practice presentation and communication skills. I'm ready to work on public speaking, stakeholder communication, and storytelling. Please start the session.",
}

const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

type ChatMessage struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Recognizer and Synthesizer are optional speech capabilities. A nil
// implementation degrades to text-only with a visible notice.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Notifier receives user-visible toasts ("info", "warn", "error").
type Notifier func(level, message string)

var (
	ErrBusy            = errors.New("a turn is already in progress")
	ErrNoSkillSelected = errors.New("no skill or role selected")
)

type Controller struct {
	mu sync.Mutex

	store       Store
	api         API
	recognizer  Recognizer
	synthesizer Synthesizer
	notify      Notifier

	phase         Phase
	selectedSkill string
	roleId        string
	messages      []ChatMessage
	busy          bool

	speechNoticeShown bool
}

type Options struct {
	Recognizer  Recognizer
	Synthesizer Synthesizer
	Notify      Notifier
}

func NewController(store Store, api API, opts Options) *Controller {
	notify := opts.Notify
	if notify == nil {
		notify = func(level, message string) {}
	}
	return &Controller{
		store:       store,
		api:         api,
		recognizer:  opts.Recognizer,
		synthesizer: opts.Synthesizer,
		notify:      notify,
		phase:       PhaseSelect,
		messages:    []ChatMessage{welcome()},
	}
}

func welcome() ChatMessage {
	return ChatMessage{
		Type:      MessageTypeBot,
		Content:   WelcomeMessage,
		Timestamp: time.Now(),
	}
}

// storedSession is the JSON shape shared with the original front end's
// localStorage payloads.
type storedSession struct {
	Id        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	Skill     string        `json:"skill"`
	Timestamp time.Time     `json:"timestamp"`
}

// Start resolves the entry phase. Resume handoffs win over the saved
// session marker, which wins over a role from navigation.
func (c *Controller) Start(roleId string) Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	if raw, found := c.store.Get(KeyResumeSession); found {
		c.store.Delete(KeyResumeSession)
		var session storedSession
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			c.phase = PhaseSelect
			return c.phase
		}
		if len(session.Messages) > 0 {
			c.messages = session.Messages
		} else {
			c.messages = []ChatMessage{welcome()}
		}
		c.selectedSkill = session.Skill
		c.phase = PhaseChat
		c.notify("info", "Session resumed!")
		return c.phase
	}

	if _, found := c.store.Get(KeyLastSession); found {
		c.phase = PhaseResume
		return c.phase
	}

	if roleId != "" {
		c.roleId = roleId
		c.phase = PhaseChat
		c.messages = []ChatMessage{{
			Type:      MessageTypeBot,
			Content:   fmt.Sprintf("Welcome! Let's start your mock interview for the role of %s. Please introduce yourself or say \"ready\" to begin!", roleId),
			Timestamp: time.Now(),
		}}
		return c.phase
	}

	c.phase = PhaseSelect
	return c.phase
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatMessage{}, c.messages...)
}

func (c *Controller) SelectedSkill() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedSkill
}

// roleContext builds the context suffix exactly as the front end always
// has, so prompts stay stable across clients.
func (c *Controller) roleContext() (role, roleContext string) {
	if c.roleId != "" {
		return c.roleId, fmt.Sprintf("\n\nIMPORTANT CONTEXT: The user is practicing for the role: %s. Focus on %s specific questions, technologies, and scenarios.", c.roleId, c.roleId)
	}
	if c.selectedSkill != "" {
		return c.selectedSkill, fmt.Sprintf("\n\nIMPORTANT CONTEXT: The user is practicing for the skill: %s.", c.selectedSkill)
	}
	return "", ""
}

func (c *Controller) appendLocked(msg ChatMessage) {
	c.messages = append(c.messages, msg)
}

func historySnapshot(messages []ChatMessage) []RemoteMessage {
	history := make([]RemoteMessage, len(messages))
	for i, m := range messages {
		history[i] = RemoteMessage{
			Sender:    m.Type,
			Text:      m.Content,
			Timestamp: m.Timestamp,
		}
	}
	return history
}

// fetchReply calls the backend and appends the reply, or an inline
// error line. The transcript is never dropped on failure.
func (c *Controller) fetchReply(ctx context.Context, message string, history []RemoteMessage) {
	c.mu.Lock()
	role, roleContext := c.roleContext()
	token, _ := c.store.Get(KeyToken)
	c.mu.Unlock()

	reply, err := c.api.Chat(ctx, token, ChatParams{
		Message:     message,
		Role:        role,
		RoleContext: roleContext,
		History:     history,
	})
	if err == nil && reply == "" {
		err = errors.New("AI service returned empty response")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false

	if err != nil {
		c.appendLocked(ChatMessage{
			Type:      MessageTypeBot,
			Content:   fmt.Sprintf("Error: %s. Please try again or check your connection.", err.Error()),
			Timestamp: time.Now(),
		})
		c.notify("error", "Error: Could not get AI response. Please try again.")
		return
	}

	c.appendLocked(ChatMessage{
		Type:      MessageTypeBot,
		Content:   reply,
		Timestamp: time.Now(),
	})
}

// ChooseSkill seeds the transcript and sends the skill's canned
// conversation starter.
func (c *Controller) ChooseSkill(ctx context.Context, skillId string) error {
	skill, found := SkillById(skillId)
	if !found {
		return fmt.Errorf("unknown skill %q", skillId)
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.store.Delete(KeySelectedRole)
	c.roleId = ""
	c.selectedSkill = skill.Id
	c.phase = PhaseChat
	c.messages = []ChatMessage{
		welcome(),
		{
			Type:      MessageTypeUser,
			Content:   fmt.Sprintf("I want to practice %s", skill.Name),
			Timestamp: time.Now(),
		},
	}
	history := historySnapshot(c.messages)
	c.mu.Unlock()

	starter, ok := conversationStarters[skill.Id]
	if !ok {
		starter = fmt.Sprintf("Hi! I'm ready to practice %s. Please start the interview with a warm greeting and ask me an engaging first question.", skill.Name)
	}

	c.fetchReply(ctx, starter, history)
	return nil
}

// Send appends the user's message and requests a reply. Requires a
// chosen skill or role; turns are serialized.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.roleId == "" && c.selectedSkill == "" {
		c.mu.Unlock()
		c.notify("warn", "Please select a skill first before sending messages.")
		return ErrNoSkillSelected
	}
	c.busy = true
	history := historySnapshot(c.messages)
	c.appendLocked(ChatMessage{
		Type:      MessageTypeUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	c.mu.Unlock()

	c.fetchReply(ctx, text, history)
	return nil
}

// PracticeAgain asks for another question without adding a synthetic
// user message to the transcript.
func (c *Controller) PracticeAgain(ctx context.Context) error {
	return c.cannedInstruction(ctx,
		"Let's try another %s question.",
		"Let's try another question for the role of %s.")
}

// HarderQuestion escalates difficulty, same transcript rules as
// PracticeAgain.
func (c *Controller) HarderQuestion(ctx context.Context) error {
	return c.cannedInstruction(ctx,
		"Give me a harder %s question.",
		"Give me a harder question for the role of %s.")
}

func (c *Controller) cannedInstruction(ctx context.Context, skillFormat, roleFormat string) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}

	var instruction string
	if c.selectedSkill != "" {
		skill, _ := SkillById(c.selectedSkill)
		instruction = fmt.Sprintf(skillFormat, skill.Name)
	} else if c.roleId != "" {
		instruction = fmt.Sprintf(roleFormat, c.roleId)
	} else {
		c.mu.Unlock()
		return ErrNoSkillSelected
	}
	c.busy = true
	history := historySnapshot(c.messages)
	c.mu.Unlock()

	c.fetchReply(ctx, instruction, history)
	return nil
}

// StartNew resets to skill selection and clears the saved session
// marker.
func (c *Controller) StartNew() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseSelect
	c.selectedSkill = ""
	c.roleId = ""
	c.messages = []ChatMessage{welcome()}
	c.busy = false
	c.store.Delete(KeyLastSession)
}

// ResumeLast restores the transcript saved under the last-session key.
func (c *Controller) ResumeLast() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, found := c.store.Get(KeyLastSession)
	if !found {
		c.phase = PhaseSelect
		return errors.New("no saved session")
	}

	var session storedSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		c.phase = PhaseSelect
		c.notify("error", "Error resuming session. Starting fresh.")
		return err
	}

	c.messages = session.Messages
	c.selectedSkill = session.Skill
	c.phase = PhaseChat
	c.notify("info", "Session resumed!")
	return nil
}

// SaveLocal appends the transcript to the local session list and
// updates the last-session marker.
func (c *Controller) SaveLocal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	session := storedSession{
		Id:        fmt.Sprintf("%d", time.Now().UnixMilli()),
		Messages:  append([]ChatMessage{}, c.messages...),
		Skill:     c.selectedSkill,
		Timestamp: time.Now(),
	}

	var sessions []storedSession
	if raw, found := c.store.Get(KeySessionList); found {
		if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
			sessions = nil
		}
	}
	sessions = append(sessions, session)

	listRaw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	sessionRaw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	c.store.Set(KeySessionList, string(listRaw))
	c.store.Set(KeyLastSession, string(sessionRaw))
	c.notify("info", "Session saved successfully!")
	return nil
}

// Save posts the transcript to the backend. An expired token clears
// stored credentials and returns ErrSessionExpired.
func (c *Controller) Save(ctx context.Context) (*RemoteSession, error) {
	c.mu.Lock()
	token, _ := c.store.Get(KeyToken)
	role := c.selectedSkill
	if c.roleId != "" {
		role = c.roleId
	}
	messages := make([]RemoteMessage, len(c.messages))
	for i, m := range c.messages {
		messages[i] = RemoteMessage{
			Sender:    m.Type,
			Text:      m.Content,
			Timestamp: m.Timestamp,
		}
	}
	c.mu.Unlock()

	if role == "" {
		return nil, ErrNoSkillSelected
	}

	saved, err := c.api.SaveSession(ctx, token, RemoteSession{
		Role:     role,
		Messages: messages,
	})
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			c.mu.Lock()
			c.store.Delete(KeyToken)
			c.mu.Unlock()
			c.notify("error", "Session expired. Please log in again.")
		}
		return nil, err
	}
	return saved, nil
}

// Listen captures one utterance. Without a recognizer it degrades to a
// one-time notice and an empty result.
func (c *Controller) Listen(ctx context.Context) (string, error) {
	c.mu.Lock()
	recognizer := c.recognizer
	shown := c.speechNoticeShown
	if recognizer == nil {
		c.speechNoticeShown = true
	}
	c.mu.Unlock()

	if recognizer == nil {
		if !shown {
			c.notify("error", "Speech recognition is not supported in this environment.")
		}
		return "", nil
	}
	return recognizer.Listen(ctx)
}

// Speak reads a bot message aloud when a synthesizer is available.
func (c *Controller) Speak(ctx context.Context, text string) error {
	c.mu.Lock()
	synthesizer := c.synthesizer
	shown := c.speechNoticeShown
	if synthesizer == nil {
		c.speechNoticeShown = true
	}
	c.mu.Unlock()

	if synthesizer == nil {
		if !shown {
			c.notify("error", "Text-to-speech is not supported in this environment.")
		}
		return nil
	}
	return synthesizer.Speak(ctx, text)
}
