// Package transcript reads the JSONL session log written by the coding
// assistant and recovers the model that produced the latest reply.
package transcript

import (
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ai8future/actual-model/internal/status"
)

// EntryTypeAssistant tags log entries produced by the assistant.
const EntryTypeAssistant = "assistant"

// LastAssistantModel returns the model of the most recent assistant entry in
// the log at path. Unreadable files and logs without such an entry report
// false. Malformed lines are skipped.
func LastAssistantModel(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("transcript unreadable", "path", path, "error", err)
		return "", false
	}

	lines := nonEmptyLines(string(data))
	for i := len(lines) - 1; i >= 0; i-- {
		if model, ok := assistantModel(lines[i]); ok {
			slog.Debug("model found in transcript", "path", path, "line", i+1, "model", model)
			return model, true
		}
	}

	slog.Debug("no assistant entry with a model in transcript", "path", path, "lines", len(lines))
	return "", false
}

// nonEmptyLines splits content on newlines, trimming each line and dropping
// blank ones.
func nonEmptyLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// assistantModel reports the model named by a single log line, if the line
// is a well-formed assistant entry carrying one.
func assistantModel(line string) (string, bool) {
	if !gjson.Valid(line) {
		return "", false
	}
	entry := gjson.Parse(line)
	if !entry.IsObject() {
		return "", false
	}

	typ := status.Field(entry, "type")
	if typ.Type != gjson.String || typ.Str != EntryTypeAssistant {
		return "", false
	}

	model := status.Field(entry, "message", "model")
	if model.Type != gjson.String || model.Str == "" {
		return "", false
	}
	return model.Str, true
}

// Tier looks the model up in the transcript referenced by the payload.
type Tier struct{}

// Name implements resolve.Tier.
func (Tier) Name() string { return "transcript" }

// Lookup implements resolve.Tier.
func (Tier) Lookup(rec *status.Record) (string, bool) {
	if !rec.HasTranscript() {
		return "", false
	}
	return LastAssistantModel(rec.TranscriptPath)
}
