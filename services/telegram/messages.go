package telegram

func welcomeMessage() string {
	msg := "👋 Hi! I'm *GetRich Notifier* 🤖\n\n"
	msg += "I watch the LINE Let's Get Rich Facebook page and the update notes feed, "
	msg += "and announce every new post in the chats registered for them. 📨\n\n"
	msg += "🛠 *Admins:* run `/setup` or `/setup_update` to register a destination chat.\n"
	msg += "💬 *Need help?* Type `/help` for a list of commands."
	return msg
}

func helpMessage() string {
	msg := "🤖 *GetRich Notifier* – Help Guide 📢\n\n"
	msg += "📝 *Commands available:*\n"
	msg += "🛠 `/setup [chatID]` – Send page notifications to this chat (or the given one). Admins only.\n"
	msg += "🛠 `/setup_update [chatID]` – Send update notes to this chat (or the given one). Admins only.\n"
	msg += "🔍 `/checkupdate` – Fetch the latest page post right now.\n"
	msg += "🔍 `/checknews` – Fetch the latest update notes right now.\n"
	msg += "🎲 `/stats` – Show the cached event cost statistics.\n"
	msg += "💡 `/help` – Show this help message.\n\n"
	msg += "Event stats are maintained with `!stats_add \"<event>\" \"<items>\" <nGacha> <nModal> [*<extraNote>]`."
	return msg
}

func genericErrorMessage() string {
	msg := "😔 *Oops! Something Went Wrong*\n\n"
	msg += "I couldn't complete your request. Here's what you can try:\n"
	msg += "1️⃣ Double-check the information you provided.\n"
	msg += "2️⃣ Wait a moment and try again."
	return msg
}
