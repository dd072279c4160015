package builder

// Severity classifies a notice for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is one user-facing notification emitted by an editor operation.
type Notice struct {
	Severity Severity
	Message  string
}

// Notifier receives notices as they are emitted. The editor also keeps
// its own transcript, so a notifier is optional.
type Notifier func(Notice)

func successNotice(message string) Notice {
	return Notice{Severity: SeveritySuccess, Message: message}
}

func errorNotice(message string) Notice {
	return Notice{Severity: SeverityError, Message: message}
}
