package mailer

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildSkipsBlankRecipients(t *testing.T) {
	if got := build("salon@example.com", Message{To: []string{" ", ""}}); got != nil {
		t.Fatalf("want no message for blank recipients, got %d", len(got))
	}
}

func TestBuildWithAttachment(t *testing.T) {
	msgs := build("salon@example.com", Message{
		To:          []string{"owner@example.com "},
		Subject:     "Auto clock-out",
		HTML:        "<p>2 sessions closed</p>",
		Attachments: []Attachment{{Name: "attendance.xlsx", Data: []byte("xlsx-bytes")}},
	})
	if len(msgs) != 1 {
		t.Fatalf("want 1 message, got %d", len(msgs))
	}
	if to := msgs[0].GetHeader("To"); len(to) != 1 || to[0] != "owner@example.com" {
		t.Fatalf("To = %v", to)
	}

	var buf bytes.Buffer
	if _, err := msgs[0].WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	if !strings.Contains(buf.String(), "attendance.xlsx") {
		t.Fatal("attachment name missing from rendered message")
	}
}
