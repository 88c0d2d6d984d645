package types

import (
	"encoding/json"
	"fmt"
)

// MarshalTranscript encodes a transcript as a JSON array of tagged
// messages. This is the durable memory file format.
func MarshalTranscript(msgs []Message) ([]byte, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return data, nil
}

// UnmarshalTranscript decodes a transcript previously encoded with
// MarshalTranscript.
func UnmarshalTranscript(data []byte) ([]Message, error) {
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return msgs, nil
}

// CloneTranscript returns a deep copy of the transcript. Callers that
// hand transcripts across node boundaries use this to keep snapshots
// independent.
func CloneTranscript(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}
