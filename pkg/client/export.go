package client

import (
	"fmt"
	"io"
	"time"
)

// Export renders the transcript as plain text, entirely offline.
func (c *Controller) Export(w io.Writer) error {
	c.mu.Lock()
	messages := append([]ChatMessage{}, c.messages...)
	skillId := c.selectedSkill
	c.mu.Unlock()

	skillName := ""
	if skill, found := SkillById(skillId); found {
		skillName = skill.Name
	}

	if _, err := fmt.Fprintln(w, "MockBot Interview Session"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Skill: %s\n", skillName); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05")); err != nil {
		return err
	}

	for _, msg := range messages {
		speaker := "MockBot"
		if msg.Type == MessageTypeUser {
			speaker = "You"
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", speaker, msg.Content); err != nil {
			return err
		}
	}
	return nil
}
