package models

import (
	"testing"
	"time"
)

func TestReminderStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to ReminderStatus
		want     bool
	}{
		{ReminderStatusPending, ReminderStatusSent, true},
		{ReminderStatusPending, ReminderStatusAcknowledged, true},
		{ReminderStatusPending, ReminderStatusMissed, true},
		{ReminderStatusSent, ReminderStatusAcknowledged, true},
		{ReminderStatusSent, ReminderStatusMissed, true},
		{ReminderStatusSent, ReminderStatusPending, false},
		{ReminderStatusAcknowledged, ReminderStatusMissed, false},
		{ReminderStatusAcknowledged, ReminderStatusSent, false},
		{ReminderStatusMissed, ReminderStatusAcknowledged, false},
		{ReminderStatusMissed, ReminderStatusPending, false},
		{ReminderStatusPending, ReminderStatusPending, false},
		{ReminderStatusSent, ReminderStatusSent, false},
		{ReminderStatusPending, ReminderStatus("Snoozed"), false},
		{ReminderStatus("snoozed"), ReminderStatusSent, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestReminderStatusIsTerminal(t *testing.T) {
	if ReminderStatusPending.IsTerminal() || ReminderStatusSent.IsTerminal() {
		t.Error("Pending and Sent must not be terminal")
	}
	if !ReminderStatusAcknowledged.IsTerminal() || !ReminderStatusMissed.IsTerminal() {
		t.Error("Acknowledged and Missed must be terminal")
	}
}

func TestPrescriptionIsActive(t *testing.T) {
	june1 := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)
	endMay31 := time.Date(2024, 5, 31, 0, 0, 0, 0, time.Local)
	endJune1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	endJune30 := time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		end  *time.Time
		want bool
	}{
		{"no end date", nil, true},
		{"ended yesterday", &endMay31, false},
		{"ends today", &endJune1, true},
		{"ends later this month", &endJune30, true},
	}
	for _, tc := range cases {
		p := Prescription{EndDate: tc.end}
		if got := p.IsActive(june1); got != tc.want {
			t.Errorf("%s: IsActive = %v, want %v", tc.name, got, tc.want)
		}
	}
}
