package bot

const (
	helpText = "I am a work in progress and may not perform as you expect. " +
		"You can see this message again by typing **!help**. " +
		"You can set a reminder for yourself with the command " +
		"**!remindme [about a thing] [at a time in the future]**. " +
		"Other commands: **!snooze [for a while / until a time]**, " +
		"**!reminders**, **!forget** and **!clear**."

	invalidReminderText = "You didn't give me a future date or valid message for the reminder"
	invalidSnoozeText   = "You didn't give me a valid future time to snooze until"
	rateLimitedText     = "You have asked me for too many reminders recently, please try again later."
	nothingToSnoozeText = "You have no fired reminder to snooze."
	nothingToForgetText = "You have no fired reminder to forget."
	noRemindersText     = "You have no upcoming reminders."
	errorText           = "Looks like even I forget things, like how to do what you just asked. " +
		"Please ask me again later."

	reminderSetTextFmt     = "Ok **<@%s>**, On **%s** I will remind you **%s**"
	reminderSnoozedTextFmt = "Ok **<@%s>**, I will remind you again on **%s**"
	forgottenText          = "I have forgotten your last reminder."
	clearedTextFmt         = "I have removed all %d of your reminders **<@%s>**"
)

// timeLayout renders times the way the original bot did with moment's
// LLL format.
const timeLayout = "January 2, 2006 3:04 PM"
