package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/j-veylop/activity-log-dashboard/internal/activitylog"
	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
)

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		n    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("NotificationType(%d).String() = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNotification_IsExpired(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want bool
	}{
		{"NoDuration", Notification{CreatedAt: time.Now().Add(-time.Hour)}, false},
		{"Fresh", Notification{CreatedAt: time.Now(), Duration: time.Minute}, false},
		{"Expired", Notification{CreatedAt: time.Now().Add(-time.Minute), Duration: time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_Initial(t *testing.T) {
	s := NewState()
	if !s.IsInitialLoading() || !s.AnyLoading() {
		t.Error("new state should be loading")
	}
	if s.Report() != nil || s.LoadReport() != nil {
		t.Error("new state should have no report")
	}
	if s.TimeSinceUpdate() != 0 || !s.LastUpdated().IsZero() {
		t.Error("new state should have no update time")
	}
}

func TestState_SetReport(t *testing.T) {
	s := NewState()
	report := &analytics.Report{Rows: 3}
	load := &activitylog.Report{Rows: 3}

	s.SetReport(report, load)

	if s.Report() != report || s.LoadReport() != load {
		t.Error("SetReport should store both reports")
	}
	if s.IsInitialLoading() {
		t.Error("SetReport should clear initial loading")
	}
	if s.LastUpdated().IsZero() {
		t.Error("SetReport should record the update time")
	}
}

func TestState_Loading(t *testing.T) {
	s := NewState()
	s.SetLoading(ResourceInitial, false)
	if s.AnyLoading() {
		t.Error("nothing should be loading")
	}

	s.SetLoading(ResourceRefresh, true)
	if !s.AnyLoading() || s.IsInitialLoading() {
		t.Error("only refresh should be loading")
	}

	s.SetLoading("unknown", true)
	s.SetLoading(ResourceRefresh, false)
	if s.AnyLoading() {
		t.Error("unknown resources should be ignored")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id1 := s.AddNotification(NotificationInfo, "first", time.Minute)
	id2 := s.AddNotification(NotificationError, "second", time.Minute)
	if id1 == id2 {
		t.Fatal("notification IDs should be unique")
	}

	if got := len(s.GetNotifications()); got != 2 {
		t.Fatalf("len(GetNotifications()) = %d, want 2", got)
	}

	s.RemoveNotification(id1)
	notes := s.GetNotifications()
	if len(notes) != 1 || notes[0].Message != "second" {
		t.Errorf("after remove = %+v", notes)
	}
}

func TestState_NotificationsCapped(t *testing.T) {
	s := NewState()
	for i := range 15 {
		s.AddNotification(NotificationInfo, fmt.Sprintf("n%d", i), time.Minute)
	}

	notes := s.GetNotifications()
	if len(notes) != maxNotifications {
		t.Fatalf("len = %d, want %d", len(notes), maxNotifications)
	}
	if notes[0].Message != "n5" {
		t.Errorf("oldest kept = %q, want n5", notes[0].Message)
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationInfo, "short", time.Nanosecond)
	s.AddNotification(NotificationInfo, "long", time.Hour)
	time.Sleep(time.Millisecond)

	s.ClearExpiredNotifications()
	notes := s.GetNotifications()
	if len(notes) != 1 || notes[0].Message != "long" {
		t.Errorf("after clear = %+v", notes)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()
	s.SetLoadingNotification("Loading")
	s.SetLoadingNotification("Still loading")

	notes := s.GetNotifications()
	if len(notes) != 1 {
		t.Fatalf("loading notification should be unique, got %d", len(notes))
	}
	if notes[0].Message != "Still loading" || notes[0].Type != NotificationLoading {
		t.Errorf("loading notification = %+v", notes[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}
