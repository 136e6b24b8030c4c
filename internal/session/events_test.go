package session

import (
	"encoding/json"
	"strings"
	"testing"

	"ai-interview-be/internal/entity"
)

func TestParseInbound(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Inbound
		wantErr bool
	}{
		{
			name:    "ping",
			payload: `{"type":"ping"}`,
			want:    PingEvent{},
		},
		{
			name:    "candidate response",
			payload: `{"type":"candidate_response","content":"I led the migration."}`,
			want:    CandidateResponseEvent{Content: "I led the migration."},
		},
		{
			name:    "integrity flag",
			payload: `{"type":"integrity_flag","flag_type":"gaze_away","description":"looked off screen"}`,
			want:    IntegrityFlagEvent{FlagType: "gaze_away", Description: "looked off screen"},
		},
		{
			name:    "violation with explicit action",
			payload: `{"type":"integrity_violation","reason":"second person detected","action":"terminate"}`,
			want:    IntegrityViolationEvent{Reason: "second person detected", Action: "terminate"},
		},
		{
			name:    "violation defaults action",
			payload: `{"type":"integrity_violation","reason":"screen share detected"}`,
			want:    IntegrityViolationEvent{Reason: "screen share detected", Action: entity.DefaultViolationAction},
		},
		{
			name:    "end interview",
			payload: `{"type":"end_interview"}`,
			want:    EndInterviewEvent{},
		},
		{
			name:    "unknown type is skipped",
			payload: `{"type":"mystery","content":"x"}`,
			want:    nil,
		},
		{
			name:    "missing type is skipped",
			payload: `{"content":"x"}`,
			want:    nil,
		},
		{
			name:    "malformed json",
			payload: `{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInbound([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestOutboundWireShape(t *testing.T) {
	tests := []struct {
		name  string
		event Outbound
		want  string
	}{
		{"ai message", AiMessage("Tell me about yourself."), `{"type":"ai_message","content":"Tell me about yourself."}`},
		{"pong", Pong(), `{"type":"pong"}`},
		{"error", ErrorEvent("interview not found"), `{"type":"error","message":"interview not found"}`},
		{"evaluation notice", EvaluationNotice("Interview terminated due to integrity violations"), `{"type":"evaluation","content":"Interview terminated due to integrity violations"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}

func TestEvaluationReportCarriesDocument(t *testing.T) {
	evaluation := &entity.Evaluation{
		Recommendation: "Strong fit",
		OverallScore:   88,
	}
	data, err := json.Marshal(EvaluationReport(evaluation))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"type":"evaluation"`) {
		t.Errorf("missing type tag: %s", data)
	}
	if !strings.Contains(string(data), `"recommendation":"Strong fit"`) {
		t.Errorf("missing report body: %s", data)
	}
}
