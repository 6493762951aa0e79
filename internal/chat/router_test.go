package chat

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Soulima01/Pranaya/internal/assistant"
	"github.com/Soulima01/Pranaya/internal/store"
)

// fakeTrackers records the mutations the router performs.
type fakeTrackers struct {
	water      int
	medsLogged []string
	existing   map[string]store.Medication // lowercase query -> matched entry
	toggled    []string
	vaccines   []string
	periodDate string
}

func newFakeTrackers() *fakeTrackers {
	return &fakeTrackers{existing: map[string]store.Medication{}}
}

func (f *fakeTrackers) AddWater(userID string, amount int) (int, error) {
	f.water += amount
	return f.water, nil
}

func (f *fakeTrackers) LogMedication(userID, name string) (store.Medication, bool, error) {
	for _, med := range f.existing {
		f.toggled = append(f.toggled, med.ID)
		med.Taken = true
		return med, false, nil
	}
	f.medsLogged = append(f.medsLogged, name)
	return store.Medication{ID: "new", Name: name}, true, nil
}

func (f *fakeTrackers) AddVaccine(userID, name string) error {
	f.vaccines = append(f.vaccines, name)
	return nil
}

func (f *fakeTrackers) SetPeriodDate(userID, date string) error {
	f.periodDate = date
	return nil
}

func trackerResponse(t *testing.T, data map[string]interface{}, message string) *assistant.ChatResponse {
	t.Helper()
	res := &assistant.ChatResponse{
		RoutedTo: assistant.RouteTracker,
		Response: assistant.Payload{Message: message},
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal tracker data: %v", err)
		}
		res.Response.Data = raw
	}
	return res
}

func TestRouterWaterQuantity(t *testing.T) {
	trackers := newFakeTrackers()
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	res := trackerResponse(t, map[string]interface{}{"category": "water", "quantity": "500ml"}, "Logged 500ml of water.")
	out := router.Apply(context.Background(), "u1", sess, res)

	if trackers.water != 500 {
		t.Errorf("water = %d, want 500", trackers.water)
	}
	if out.Reply.Type != TypeTrackerLog {
		t.Errorf("reply type = %q, want tracker_log", out.Reply.Type)
	}
	if out.Reply.Content != "Logged 500ml of water." {
		t.Errorf("reply content = %q", out.Reply.Content)
	}
}

func TestRouterWaterDefaultsToOneGlass(t *testing.T) {
	trackers := newFakeTrackers()
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	router.Apply(context.Background(), "u1", sess, trackerResponse(t, map[string]interface{}{"category": "water"}, ""))

	if trackers.water != store.DefaultWaterAmount {
		t.Errorf("water = %d, want %d", trackers.water, store.DefaultWaterAmount)
	}
}

func TestRouterWaterNumericQuantity(t *testing.T) {
	trackers := newFakeTrackers()
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	router.Apply(context.Background(), "u1", sess, trackerResponse(t, map[string]interface{}{"category": "water", "quantity": 750}, ""))

	if trackers.water != 750 {
		t.Errorf("water = %d, want 750", trackers.water)
	}
}

func TestRouterMedicineTogglesExistingEntry(t *testing.T) {
	trackers := newFakeTrackers()
	trackers.existing["metformin"] = store.Medication{ID: "m1", Name: "Metformin 500mg"}
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	router.Apply(context.Background(), "u1", sess, trackerResponse(t, map[string]interface{}{"category": "medicine", "item": "Metformin"}, "Noted."))

	if len(trackers.medsLogged) != 0 {
		t.Errorf("created a duplicate entry: %v", trackers.medsLogged)
	}
	if len(trackers.toggled) != 1 || trackers.toggled[0] != "m1" {
		t.Errorf("existing entry not toggled: %v", trackers.toggled)
	}
}

func TestRouterMedicineCreatesWhenNoMatch(t *testing.T) {
	trackers := newFakeTrackers()
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	router.Apply(context.Background(), "u1", sess, trackerResponse(t, map[string]interface{}{"category": "medicine", "item": "Metformin"}, ""))

	if len(trackers.medsLogged) != 1 || trackers.medsLogged[0] != "Metformin" {
		t.Errorf("medsLogged = %v, want [Metformin]", trackers.medsLogged)
	}
}

func TestRouterVaccineAndPeriodDefaults(t *testing.T) {
	trackers := newFakeTrackers()
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	router.Apply(context.Background(), "u1", sess, trackerResponse(t, map[string]interface{}{"category": "vaccine"}, ""))
	router.Apply(context.Background(), "u1", sess, trackerResponse(t, map[string]interface{}{"category": "period"}, ""))

	if len(trackers.vaccines) != 1 || trackers.vaccines[0] != "Vaccine" {
		t.Errorf("vaccines = %v, want [Vaccine]", trackers.vaccines)
	}
	if trackers.periodDate != "Today" {
		t.Errorf("periodDate = %q, want Today", trackers.periodDate)
	}
}

func TestRouterTrackerWithoutDataAcknowledges(t *testing.T) {
	trackers := newFakeTrackers()
	router := NewRouter(trackers, nil)
	sess := newSession("Asha")

	out := router.Apply(context.Background(), "u1", sess, trackerResponse(t, nil, "ignored"))

	if out.Reply.Content != "I've noted that down." {
		t.Errorf("reply = %q", out.Reply.Content)
	}
	if out.Reply.Type != "" {
		t.Errorf("generic ack should be untyped, got %q", out.Reply.Type)
	}
	if trackers.water != 0 || len(trackers.medsLogged) != 0 {
		t.Error("payload-less tracker tag mutated state")
	}
}

func TestRouterEmergencySetsSessionFlag(t *testing.T) {
	router := NewRouter(newFakeTrackers(), nil)
	sess := newSession("Asha")

	res := &assistant.ChatResponse{
		RoutedTo: assistant.RouteEmergency,
		Response: assistant.Payload{Message: "CRITICAL ALERT: call emergency services."},
	}
	out := router.Apply(context.Background(), "u1", sess, res)

	if !sess.Emergency() {
		t.Error("emergency flag not raised")
	}
	if out.Reply.Type != TypeEmergency {
		t.Errorf("reply type = %q", out.Reply.Type)
	}
}

func TestRouterDiagnosisCarriesReport(t *testing.T) {
	router := NewRouter(newFakeTrackers(), nil)
	sess := newSession("Asha")

	raw, _ := json.Marshal(map[string]interface{}{
		"potential_conditions": []map[string]string{
			{"name": "Migraine", "likelihood": "High", "reasoning": "Recurring one-sided headache."},
		},
		"immediate_advice": "Rest in a dark room.",
		"unknown_field":    "ignored",
	})
	res := &assistant.ChatResponse{
		RoutedTo: assistant.RouteDiagnosis,
		Response: assistant.Payload{Data: raw},
	}
	out := router.Apply(context.Background(), "u1", sess, res)

	report, ok := out.Reply.Data.(DiagnosisReport)
	if !ok {
		t.Fatalf("reply data is %T", out.Reply.Data)
	}
	if len(report.PotentialConditions) != 1 || report.PotentialConditions[0].Name != "Migraine" {
		t.Errorf("report = %+v", report)
	}
	if out.Reply.Content != "Rest in a dark room." {
		t.Errorf("content = %q", out.Reply.Content)
	}
	if out.Spoken != "Here is my analysis. Rest in a dark room." {
		t.Errorf("spoken = %q", out.Spoken)
	}
}

func TestRouterMythBuster(t *testing.T) {
	router := NewRouter(newFakeTrackers(), nil)
	sess := newSession("Asha")

	raw, _ := json.Marshal(map[string]string{"verdict": "MYTH", "explanation": "Cracking knuckles does not cause arthritis."})
	res := &assistant.ChatResponse{
		RoutedTo: assistant.RouteMythBuster,
		Response: assistant.Payload{Data: raw},
	}
	out := router.Apply(context.Background(), "u1", sess, res)

	if out.Reply.Type != TypeMyth {
		t.Errorf("type = %q", out.Reply.Type)
	}
	fact, ok := out.Reply.Data.(FactCheck)
	if !ok || fact.Verdict != "MYTH" {
		t.Errorf("data = %+v", out.Reply.Data)
	}
}

func TestRouterUnknownTagFallsBackToPlain(t *testing.T) {
	router := NewRouter(newFakeTrackers(), nil)
	sess := newSession("Asha")

	res := &assistant.ChatResponse{
		RoutedTo:    "vision",
		Response:    assistant.Payload{Message: "This report looks normal."},
		Suggestions: []string{"What should I eat?", "Is it serious?"},
	}
	out := router.Apply(context.Background(), "u1", sess, res)

	if out.Reply.Type != "" || out.Reply.Content != "This report looks normal." {
		t.Errorf("reply = %+v", out.Reply)
	}
	if got := sess.Suggestions(); len(got) != 2 {
		t.Errorf("suggestions = %v", got)
	}

	// The reply lands at the end of the transcript
	msgs := sess.Messages()
	if msgs[len(msgs)-1].Content != "This report looks normal." {
		t.Errorf("transcript tail = %+v", msgs[len(msgs)-1])
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"500ml", 500},
		{"2 litres", 2},
		{"", 250},
		{"a lot", 250},
	}
	for _, tt := range tests {
		if got := parseQuantity(tt.in, 250); got != tt.want {
			t.Errorf("parseQuantity(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
