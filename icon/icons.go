package icon

// Icon identifies a renderable UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Link
	Playlist
)

// icons is the registry mapping each Icon identifier to its per-variant representations.
var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(´｡• ᵕ •｡`)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "*",
		kaomoji: "(￣ー￣)ゞ",
		squares: "🟨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⌐■_■)",
		squares: "🟦",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   ">",
		kaomoji: "(つ✧ω✧)つ",
		squares: "🟪",
	},
	Playlist: {
		emoji:   "📺",
		nerd:    "",
		plain:   "#",
		kaomoji: "ヽ(・∀・)ﾉ",
		squares: "🟧",
	},
}
