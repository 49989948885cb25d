package extraction

import (
	"errors"
	"strings"
	"testing"
)

func TestAcquireText_EmptyBlob(t *testing.T) {
	_, err := AcquireText(nil, "application/pdf")
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("expected PipelineError, got %v", err)
	}
	if pipeErr.Code != ErrEmptyInput {
		t.Errorf("expected EMPTY_INPUT, got %s", pipeErr.Code)
	}
}

func TestAcquireText_PlainText(t *testing.T) {
	in := "  Total   Cholesterol\t230 mg/dL  \n\n  HbA1c 6.8%  "
	got, err := AcquireText([]byte(in), "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Total Cholesterol 230 mg/dL\nHbA1c 6.8%"
	if got.Text != want {
		t.Errorf("normalized text = %q, want %q", got.Text, want)
	}
	if len(got.MethodsUsed) != 1 || got.MethodsUsed[0] != "plain-text" {
		t.Errorf("methods = %v, want [plain-text]", got.MethodsUsed)
	}
}

func TestAcquireText_PlainTextTooShort(t *testing.T) {
	_, err := AcquireText([]byte("hi"), "text/plain")
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("expected PipelineError, got %v", err)
	}
	if pipeErr.Code != ErrInsufficientText {
		t.Errorf("expected INSUFFICIENT_TEXT, got %s", pipeErr.Code)
	}
	if pipeErr.PartialText != "hi" {
		t.Errorf("partial text = %q", pipeErr.PartialText)
	}
}

func TestAcquireText_PDFParenLiterals(t *testing.T) {
	blob := []byte("%PDF-1.4\n(Total Cholesterol 230 mg/dL) junk (HbA1c 6.8) more")
	got, err := AcquireText(blob, "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.Text, "Total Cholesterol 230 mg/dL") {
		t.Errorf("text missing paren literal: %q", got.Text)
	}
	if !strings.Contains(got.Text, "HbA1c 6.8") {
		t.Errorf("text missing second literal: %q", got.Text)
	}
	found := false
	for _, m := range got.MethodsUsed {
		if m == "paren-literal" {
			found = true
		}
	}
	if !found {
		t.Errorf("methods %v missing paren-literal", got.MethodsUsed)
	}
}

func TestAcquireText_UnreadablePDF(t *testing.T) {
	blob := []byte("%PDF-1.7\x00\x01\x02\x03\x04")
	_, err := AcquireText(blob, "application/pdf")
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("expected PipelineError, got %v", err)
	}
	if pipeErr.Code != ErrInsufficientText {
		t.Errorf("expected INSUFFICIENT_TEXT, got %s", pipeErr.Code)
	}
	if len(pipeErr.MethodsAttempted) == 0 {
		t.Error("expected attempted methods for diagnostics")
	}
}

func TestScanHexLiterals(t *testing.T) {
	// "Glucose 95 mg/dL" hex-encoded
	blob := []byte("<476c75636f7365203935206d672f644c> <zz> <41>")
	got := scanHexLiterals(blob)
	if got != "Glucose 95 mg/dL" {
		t.Errorf("scanHexLiterals = %q", got)
	}
}

func TestScanTextBlocks(t *testing.T) {
	blob := []byte("BT /F1 12 Tf (Creatinine 1.1 mg/dL) Tj (skip me) TJ ET")
	got := scanTextBlocks(blob)
	if got != "Creatinine 1.1 mg/dL" {
		t.Errorf("scanTextBlocks = %q", got)
	}
}

func TestScanStreams(t *testing.T) {
	blob := []byte("stream\x00\x01Hemoglobin 13.5 g/dL\x02\x03q Q re W n\x04endstream")
	got := scanStreams(blob)
	if !strings.Contains(got, "Hemoglobin 13.5 g/dL") {
		t.Errorf("scanStreams = %q", got)
	}
}

func TestPrintableRuns(t *testing.T) {
	runs := printableRuns([]byte("short\x00a much longer printable run here\x00x"), 15)
	if len(runs) != 1 || runs[0] != "a much longer printable run here" {
		t.Errorf("printableRuns = %v", runs)
	}
}

func TestTruncateCap(t *testing.T) {
	long := strings.Repeat("a", maxTextBytes+500)
	if got := truncate(long); len(got) != maxTextBytes {
		t.Errorf("truncate length = %d, want %d", len(got), maxTextBytes)
	}
}
