package domain

type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Severity    Severity
}
