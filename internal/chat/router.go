package chat

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Soulima01/Pranaya/internal/assistant"
	"github.com/Soulima01/Pranaya/internal/speech"
	"github.com/Soulima01/Pranaya/internal/store"
)

// TrackerStore is the slice of the persisted store the router mutates when
// the assistant reports a tracker intent.
type TrackerStore interface {
	AddWater(userID string, amount int) (int, error)
	LogMedication(userID, name string) (store.Medication, bool, error)
	AddVaccine(userID, name string) error
	SetPeriodDate(userID, date string) error
}

// Outcome is what one routed reply produced: the transcript entry that was
// appended, the text a voice surface should speak, and synthesized audio
// when a speaker is configured.
type Outcome struct {
	Reply  Message
	Spoken string
	Audio  []byte
}

// Router interprets the assistant's tagged response, mutates the persisted
// store, and appends the reply to the session transcript. Exactly one branch
// runs per response; unknown discriminators fall through to the plain branch.
type Router struct {
	Trackers TrackerStore
	Speaker  speech.Synthesizer
}

// NewRouter creates a router over the given store. Speaker may be nil.
func NewRouter(trackers TrackerStore, speaker speech.Synthesizer) *Router {
	return &Router{Trackers: trackers, Speaker: speaker}
}

// Apply dispatches one assistant response for the given user and session.
func (r *Router) Apply(ctx context.Context, userID string, sess *Session, res *assistant.ChatResponse) Outcome {
	sess.SetSuggestions(res.Suggestions)

	var reply Message
	var spoken string

	switch res.RoutedTo {
	case assistant.RouteTracker:
		reply, spoken = r.applyTracker(userID, res)

	case assistant.RouteEmergency:
		sess.SetEmergency(true)
		reply = Message{Role: RoleBot, Content: res.Response.Message, Type: TypeEmergency}
		spoken = res.Response.Message

	case assistant.RouteDiagnosis:
		var report DiagnosisReport
		decodeData(res.Response.Data, &report)
		reply = Message{Role: RoleBot, Content: report.ImmediateAdvice, Type: TypeDiagnosis, Data: report}
		spoken = "Here is my analysis. " + report.ImmediateAdvice

	case assistant.RouteMythBuster:
		var fact FactCheck
		decodeData(res.Response.Data, &fact)
		reply = Message{Role: RoleBot, Content: fact.Explanation, Type: TypeMyth, Data: fact}
		spoken = fact.Verdict + ". " + fact.Explanation

	default:
		reply = Message{Role: RoleBot, Content: res.Response.Message}
		spoken = res.Response.Message
	}

	sess.Append(reply)

	out := Outcome{Reply: reply, Spoken: speech.CleanMarkup(spoken)}
	if r.Speaker != nil && out.Spoken != "" {
		audio, err := r.Speaker.Speak(ctx, out.Spoken)
		if err != nil {
			// Voice output is best-effort; the reply itself already stands.
			log.Printf("speech synthesis skipped: %v", err)
		} else {
			out.Audio = audio
		}
	}
	return out
}

// applyTracker mutates the store per the reported category and builds the
// confirmation entry. A tracker tag with no payload data gets a generic
// acknowledgement and no mutation.
func (r *Router) applyTracker(userID string, res *assistant.ChatResponse) (Message, string) {
	var data TrackerData
	if !decodeData(res.Response.Data, &data) || data.Category == "" {
		text := "I've noted that down."
		return Message{Role: RoleBot, Content: text}, text
	}

	switch data.Category {
	case CategoryWater:
		amount := parseQuantity(string(data.Quantity), store.DefaultWaterAmount)
		if _, err := r.Trackers.AddWater(userID, amount); err != nil {
			log.Printf("failed to log water for user %s: %v", userID, err)
		}

	case CategoryMedicine:
		name := data.Item
		if name == "" {
			name = "Medicine"
		}
		if _, _, err := r.Trackers.LogMedication(userID, name); err != nil {
			log.Printf("failed to log medication for user %s: %v", userID, err)
		}

	case CategoryVaccine:
		name := data.Item
		if name == "" {
			name = "Vaccine"
		}
		if err := r.Trackers.AddVaccine(userID, name); err != nil {
			log.Printf("failed to log vaccine for user %s: %v", userID, err)
		}

	case CategoryPeriod:
		date := data.Item
		if date == "" {
			date = "Today"
		}
		if err := r.Trackers.SetPeriodDate(userID, date); err != nil {
			log.Printf("failed to log period date for user %s: %v", userID, err)
		}
	}

	text := res.Response.Message
	if text == "" {
		text = "Logged successfully."
	}
	return Message{Role: RoleBot, Content: text, Type: TypeTrackerLog}, text
}

// decodeData decodes a route-specific payload, tolerating absent or
// malformed data. Reports whether anything was decoded.
func decodeData(raw json.RawMessage, dst interface{}) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
