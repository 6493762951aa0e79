package assistant

import (
	"fmt"

	"github.com/Soulima01/Pranaya/internal/store"
)

// ProfileContext synthesizes the context line prepended to the conversation
// history so the assistant can personalize its answers.
func ProfileContext(p store.Profile) string {
	return fmt.Sprintf("[PROFILE] Name:%s, Age:%s, Weight:%s, Gender:%s, Diabetic:%s",
		p.Name, p.Age, p.Weight, p.Gender, p.IsDiabetic)
}
