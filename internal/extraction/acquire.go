package extraction

import (
	"bytes"
	"encoding/hex"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

const (
	maxTextBytes = 100 * 1024 // cap on text handed to the generators
	minTextLen   = 20         // below this, acquisition is a failure
	// rawFallbackThreshold: if the structured heuristics together
	// yield fewer characters than this, the raw printable scan runs.
	rawFallbackThreshold = 200
)

// AcquiredText is the output of raw text acquisition: a normalized
// string plus the heuristics that contributed to it.
type AcquiredText struct {
	Text        string
	MethodsUsed []string
}

// AcquireText produces a best-effort UTF-8 string from an uploaded
// blob. Plain text input is only whitespace-normalized; anything that
// looks like a PDF goes through the pdf library first and then the
// byte-pattern heuristics. The declared media type is a hint only.
func AcquireText(blob []byte, declaredType string) (*AcquiredText, error) {
	if len(blob) == 0 {
		return nil, &PipelineError{Code: ErrEmptyInput, Message: "uploaded document is empty"}
	}

	isPDF := bytes.HasPrefix(blob, []byte("%PDF")) ||
		strings.Contains(strings.ToLower(declaredType), "pdf")

	if !isPDF {
		text := normalizeText(string(blob))
		if len(text) < minTextLen {
			return nil, &PipelineError{
				Code:             ErrInsufficientText,
				Message:          "document contains too little readable text",
				MethodsAttempted: []string{"plain-text"},
				PartialText:      text,
			}
		}
		return &AcquiredText{Text: truncate(text), MethodsUsed: []string{"plain-text"}}, nil
	}

	var parts []string
	var methods []string

	if text := extractWithPDFLibrary(blob); text != "" {
		parts = append(parts, text)
		methods = append(methods, "pdf-library")
	}

	heuristics := []struct {
		name string
		fn   func([]byte) string
	}{
		{"paren-literal", scanParenLiterals},
		{"text-block", scanTextBlocks},
		{"stream", scanStreams},
		{"hex-literal", scanHexLiterals},
	}

	structuredLen := 0
	for _, h := range heuristics {
		methods = append(methods, h.name)
		if out := h.fn(blob); out != "" {
			parts = append(parts, out)
			structuredLen += len(out)
		}
	}

	if structuredLen < rawFallbackThreshold {
		methods = append(methods, "raw-fallback")
		if out := scanPrintableRuns(blob, 15); out != "" {
			parts = append(parts, out)
		}
	}

	text := normalizeText(strings.Join(parts, " "))
	if len(text) < minTextLen {
		return nil, &PipelineError{
			Code:             ErrInsufficientText,
			Message:          "could not recover readable text from the PDF",
			MethodsAttempted: methods,
			PartialText:      text,
		}
	}

	return &AcquiredText{Text: truncate(text), MethodsUsed: methods}, nil
}

// extractWithPDFLibrary runs the real PDF reader. The library panics on
// malformed files, so the whole call is recover-wrapped; any failure
// just means the byte heuristics carry the load.
func extractWithPDFLibrary(blob []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Msg("pdf library panicked, falling back to byte heuristics")
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return ""
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(plain, maxTextBytes))
	if err != nil {
		return ""
	}
	return string(raw)
}

// scanParenLiterals collects all (...) substrings of length >= 2 that
// contain at least one alphanumeric character. PDF content streams
// carry string literals this way.
func scanParenLiterals(blob []byte) string {
	var sb strings.Builder
	depth := 0
	start := -1
	for i, b := range blob {
		switch b {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					lit := blob[start:i]
					if len(lit) >= 2 && hasAlnum(lit) {
						sb.Write(lit)
						sb.WriteByte(' ')
					}
					start = -1
				}
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

var tjLiteralRe = regexp.MustCompile(`\(([^()]{2,})\)\s*Tj`)

// scanTextBlocks collects string literals inside BT ... ET text blocks
// that are immediately followed by the Tj show-text operator.
func scanTextBlocks(blob []byte) string {
	var sb strings.Builder
	rest := blob
	for {
		bt := bytes.Index(rest, []byte("BT"))
		if bt == -1 {
			break
		}
		et := bytes.Index(rest[bt:], []byte("ET"))
		if et == -1 {
			break
		}
		block := rest[bt : bt+et]
		for _, m := range tjLiteralRe.FindAllSubmatch(block, -1) {
			if hasAlnum(m[1]) {
				sb.Write(m[1])
				sb.WriteByte(' ')
			}
		}
		rest = rest[bt+et+2:]
	}
	return strings.TrimSpace(sb.String())
}

// scanStreams looks inside stream ... endstream segments for runs of
// printable characters that read like natural-language fragments.
func scanStreams(blob []byte) string {
	var sb strings.Builder
	rest := blob
	for {
		start := bytes.Index(rest, []byte("stream"))
		if start == -1 {
			break
		}
		end := bytes.Index(rest[start:], []byte("endstream"))
		if end == -1 {
			break
		}
		seg := rest[start+len("stream") : start+end]
		for _, run := range printableRuns(seg, 5) {
			if looksLikeProse(run) {
				sb.WriteString(run)
				sb.WriteByte(' ')
			}
		}
		rest = rest[start+end+len("endstream"):]
	}
	return strings.TrimSpace(sb.String())
}

// scanHexLiterals decodes <...> hex strings, keeping a run only when
// every decoded byte is printable and the run is longer than 5 chars.
func scanHexLiterals(blob []byte) string {
	var sb strings.Builder
	start := -1
	for i, b := range blob {
		switch {
		case b == '<':
			start = i + 1
		case b == '>' && start >= 0:
			raw := bytes.Map(dropSpace, blob[start:i])
			start = -1
			if len(raw) == 0 || len(raw)%2 != 0 {
				continue
			}
			decoded := make([]byte, len(raw)/2)
			if _, err := hex.Decode(decoded, raw); err != nil {
				continue
			}
			if len(decoded) > 5 && allPrintable(decoded) {
				sb.Write(decoded)
				sb.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// scanPrintableRuns is the last-resort scan over the raw bytes.
func scanPrintableRuns(blob []byte, minRun int) string {
	return strings.Join(printableRuns(blob, minRun), " ")
}

func printableRuns(data []byte, minRun int) []string {
	var runs []string
	start := -1
	for i, b := range data {
		if b >= 0x20 && b < 0x7f {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 && i-start >= minRun {
			runs = append(runs, string(data[start:i]))
		}
		start = -1
	}
	if start != -1 && len(data)-start >= minRun {
		runs = append(runs, string(data[start:]))
	}
	return runs
}

// looksLikeProse accepts runs that start with letters and continue with
// word-like characters, filtering out operator soup from content streams.
func looksLikeProse(s string) bool {
	letters := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			letters++
		}
	}
	if letters < 3 {
		return false
	}
	first := s[0]
	return first >= 'A' && first <= 'Z' || first >= 'a' && first <= 'z'
}

func hasAlnum(b []byte) bool {
	for _, c := range b {
		if c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			return true
		}
	}
	return false
}

func allPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c >= 0x7f {
			return false
		}
	}
	return true
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\n', '\r', '\t':
		return -1
	}
	return r
}

var spaceRunRe = regexp.MustCompile(`[ \t]+`)

// normalizeText collapses whitespace runs and strips everything outside
// a conservative printable/medical-symbol set. Line breaks survive so
// the table-structure detector can still count rows.
func normalizeText(s string) string {
	var lines []string
	for _, raw := range strings.Split(s, "\n") {
		var sb strings.Builder
		sb.Grow(len(raw))
		for _, r := range raw {
			switch {
			case r == '\t':
				sb.WriteByte(' ')
			case r >= 0x20 && r < 0x7f:
				sb.WriteRune(r)
			case r == 'µ' || r == '°' || r == '–' || r == '±' || r == '≤' || r == '≥':
				sb.WriteRune(r)
			}
		}
		line := strings.TrimSpace(spaceRunRe.ReplaceAllString(sb.String(), " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string) string {
	if len(s) <= maxTextBytes {
		return s
	}
	return s[:maxTextBytes]
}
