package usecase

import (
	"context"
	"testing"
)

func TestStartUsecaseSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startUsecaseSpan(ctx, "usecase.MatchService.Submit", teamAttr("team_a", 1))
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("expected a non-recording span without a parent")
	}
}

func TestTeamAttr(t *testing.T) {
	attr := teamAttr("team_id", 4)
	if string(attr.Key) != "tournament.team_id" || attr.Value.AsInt64() != 4 {
		t.Fatalf("unexpected attribute: %v=%v", attr.Key, attr.Value.Emit())
	}
}
