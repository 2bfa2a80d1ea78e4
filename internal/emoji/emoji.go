package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"positive": {"✅", "[+]"},
	"negative": {"❗", "[!]"},
	"neutral":  {"➖", "[=]"},
	"error":    {"❌", "[ERR]"},
	"warning":  {"⚠️", "[WRN]"},
	"info":     {"ℹ️", "[INF]"},
	"success":  {"✅", "[OK]"},
	"brain":    {"🧠", "[AI]"},
	"loading":  {"⏳", "[...]"},
	"text":     {"📝", "[TXT]"},
	"score":    {"📊", "[%]"},
	"server":   {"🚀", "[SRV]"},
	"watch":    {"👀", "[WATCH]"},
	"help":     {"❓", "[?]"},
	"door":     {"🚪", "[EXIT]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// ForIcon is GetEmoji for presentation icon keys. An empty key renders
// nothing.
func ForIcon(key string) string {
	if key == "" {
		return ""
	}
	return GetEmoji(key)
}
