package webhook

import "unicode/utf8"

// maxReplyRunes is the voice platform's limit on response text.
const maxReplyRunes = 1024

// Request is the inbound voice-platform envelope. Only the fields the
// handler reads are declared; the rest of the payload is ignored.
type Request struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Query   `json:"request"`
}

// Session identifies one dialog with one user.
type Session struct {
	SessionID string `json:"session_id"`
	MessageID int    `json:"message_id"`
	SkillID   string `json:"skill_id,omitempty"`
	New       bool   `json:"new"`
}

// Query carries the recognized utterance.
type Query struct {
	Command           string `json:"command"`
	OriginalUtterance string `json:"original_utterance"`
	Type              string `json:"type"`
}

// Response is the outbound envelope. Version and session echo the
// request so the platform can correlate the turn.
type Response struct {
	Version  string  `json:"version"`
	Session  Session `json:"session"`
	Response Reply   `json:"response"`
}

// Reply is the spoken and displayed answer for one turn.
type Reply struct {
	Text       string `json:"text"`
	TTS        string `json:"tts,omitempty"`
	EndSession bool   `json:"end_session"`
}

// envelope builds a Response echoing the request's version and session.
func envelope(req Request, text string) Response {
	text = truncateReply(text)
	version := req.Version
	if version == "" {
		version = "1.0"
	}
	return Response{
		Version: version,
		Session: req.Session,
		Response: Reply{
			Text: text,
			TTS:  text,
		},
	}
}

// truncateReply cuts text to the platform limit, counting runes so a
// multi-byte answer is never split mid-character.
func truncateReply(text string) string {
	if utf8.RuneCountInString(text) <= maxReplyRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxReplyRunes-1]) + "…"
}
