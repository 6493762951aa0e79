package chat

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// MessageType tags a transcript entry with how it should be rendered.
// Plain text entries carry no type.
type MessageType string

const (
	TypeDiagnosis  MessageType = "diagnosis"
	TypeEmergency  MessageType = "emergency"
	TypeMyth       MessageType = "myth"
	TypeTrackerLog MessageType = "tracker_log"
)

// Message is one transcript entry. Content may contain lightweight display
// markup; Data carries the structured payload for typed entries and Image an
// optional attached image reference.
type Message struct {
	Role    Role        `json:"role"`
	Content string      `json:"content"`
	Type    MessageType `json:"type,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Image   string      `json:"image,omitempty"`
}

// TrackerData is the payload of a tracker-routed reply.
type TrackerData struct {
	Category string     `json:"category"`
	Quantity flexString `json:"quantity"`
	Item     string     `json:"item"`
}

// Tracker categories.
const (
	CategoryWater    = "water"
	CategoryMedicine = "medicine"
	CategoryVaccine  = "vaccine"
	CategoryPeriod   = "period"
)

// Condition is one entry of a diagnosis report.
type Condition struct {
	Name       string `json:"name"`
	Likelihood string `json:"likelihood"`
	Reasoning  string `json:"reasoning"`
}

// DiagnosisReport is the payload of a diagnosis-routed reply.
type DiagnosisReport struct {
	PotentialConditions []Condition `json:"potential_conditions"`
	ImmediateAdvice     string      `json:"immediate_advice"`
}

// FactCheck is the payload of a myth-buster-routed reply.
type FactCheck struct {
	Verdict     string `json:"verdict"`
	Explanation string `json:"explanation"`
}

// flexString accepts either a JSON string or a number, since the assistant
// reports quantities in both shapes ("500ml" and 500).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// parseQuantity extracts the digits from a reported quantity and falls back
// to one glass (250 ml) when nothing usable remains.
func parseQuantity(q string, fallback int) int {
	var digits strings.Builder
	for _, r := range q {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return fallback
	}
	return n
}
