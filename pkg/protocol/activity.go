package protocol

// ActivityType classifies a row in the activity log. Stored as TEXT.
type ActivityType string

// Activity types logged by the assistant.
const (
	ActivityCall          ActivityType = "call"
	ActivityVoicemail     ActivityType = "voicemail"
	ActivityEmailSent     ActivityType = "email_sent"
	ActivityDemoScheduled ActivityType = "demo_scheduled"
	ActivityStatusChange  ActivityType = "status_change"
	ActivitySkip          ActivityType = "skip"
	ActivityDefer         ActivityType = "defer"
	ActivityFollowUp      ActivityType = "follow_up_set"
	ActivityNote          ActivityType = "note"
)

// AllActivityTypes lists every known activity type in display order.
func AllActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityCall,
		ActivityVoicemail,
		ActivityEmailSent,
		ActivityDemoScheduled,
		ActivityStatusChange,
		ActivitySkip,
		ActivityDefer,
		ActivityFollowUp,
		ActivityNote,
	}
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	for _, known := range AllActivityTypes() {
		if t == known {
			return true
		}
	}
	return false
}
