package assistant

// NoticeKind groups notices for styling.
type NoticeKind string

// Notice kinds.
const (
	NoticeInfo        NoticeKind = "info"
	NoticeCelebration NoticeKind = "celebration"
	NoticeAchievement NoticeKind = "achievement"
	NoticeFocus       NoticeKind = "focus"
	NoticeWarning     NoticeKind = "warning"
)

// Notice is a short message for the operator.
type Notice struct {
	Kind NoticeKind
	Text string
}
