package app

import (
	"time"

	"github.com/j-veylop/activity-log-dashboard/internal/activitylog"
	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
	"github.com/j-veylop/activity-log-dashboard/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// ReportLoadedMsg carries a freshly computed report. Every tab receives it.
type ReportLoadedMsg struct {
	Report     *analytics.Report
	LoadReport *activitylog.Report
	Reloaded   bool
}

// RefreshMsg requests reloading the log file.
type RefreshMsg struct{}

// RefreshResultMsg contains the result of a reload request.
type RefreshResultMsg struct {
	Error error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
