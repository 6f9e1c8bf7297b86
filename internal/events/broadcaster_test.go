package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
)

func TestSessionEventWireFormat(t *testing.T) {
	event := SessionEvent{
		EventID: "e1",
		Origin:  "o1",
		Action:  "commit",
		Session: &models.Session{
			Identity:    "7",
			DisplayName: "Ayesha",
			Role:        models.RoleFinder,
			AuthToken:   "tok-secret",
		},
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "tok-secret") {
		t.Error("expected auth token kept out of the broadcast payload")
	}

	var got SessionEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Origin != "o1" || got.Action != "commit" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.Session == nil || got.Session.Identity != "7" {
		t.Errorf("unexpected session: %+v", got.Session)
	}
}

func TestClearEventOmitsSession(t *testing.T) {
	data, err := json.Marshal(SessionEvent{EventID: "e1", Origin: "o1", Action: "clear"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "\"session\"") {
		t.Errorf("expected session omitted from clear event, got %s", data)
	}
}

func TestSubjectsAreDistinct(t *testing.T) {
	if SessionChangedSubject == JobPostedSubject {
		t.Error("expected distinct subjects for session and job events")
	}
}
