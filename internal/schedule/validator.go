// Package schedule enforces delivery and event lead times.
//
// Standard requesters book whole days ahead. Privileged (staff) requesters may
// book the same day when a delivery time at least the privileged lead away is
// given. The current instant is always passed in by the caller.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the requester class
type Role string

const (
	RoleStandard   Role = "customer"
	RolePrivileged Role = "staff"
)

// ParseRole maps a header value to a role, defaulting to standard
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staff", "admin":
		return RolePrivileged
	}
	return RoleStandard
}

var (
	ErrDateRequired  = errors.New("date is required")
	ErrTooSoon       = errors.New("date is earlier than the minimum lead time")
	ErrTimeRequired  = errors.New("a delivery time is required for same-day bookings")
	ErrTimeTooSoon   = errors.New("time is earlier than the same-day lead time")
	ErrDateInThePast = errors.New("date is in the past")
)

// Rules configures lead times and the operating window
type Rules struct {
	Location         *time.Location
	StandardLeadDays int
	PrivilegedLead   time.Duration
	Open             Clock
	Close            Clock
	SlotStep         time.Duration
}

// DefaultRules returns the storefront defaults
func DefaultRules() Rules {
	return Rules{
		Location:         time.Local,
		StandardLeadDays: 2,
		PrivilegedLead:   8 * time.Hour,
		Open:             MustClock("08:00"),
		Close:            MustClock("20:00"),
		SlotStep:         30 * time.Minute,
	}
}

// Validator checks requested dates and times against Rules
type Validator struct {
	rules Rules
}

// NewValidator creates a validator
func NewValidator(rules Rules) *Validator {
	if rules.Location == nil {
		rules.Location = time.Local
	}
	if rules.SlotStep <= 0 {
		rules.SlotStep = 30 * time.Minute
	}
	return &Validator{rules: rules}
}

// Location returns the zone dates are interpreted in
func (v *Validator) Location() *time.Location {
	return v.rules.Location
}

// Today returns midnight of now's calendar day
func (v *Validator) Today(now time.Time) time.Time {
	return midnight(now.In(v.rules.Location))
}

// MinimumDate returns the earliest bookable date for role
func (v *Validator) MinimumDate(role Role, now time.Time) time.Time {
	today := v.Today(now)
	if role == RolePrivileged {
		return today
	}
	return today.AddDate(0, 0, v.rules.StandardLeadDays)
}

// MinimumTimeToday returns the earliest same-day time for a privileged requester.
// ok is false for standard requesters and when the lead runs past midnight.
func (v *Validator) MinimumTimeToday(role Role, now time.Time) (Clock, bool) {
	if role != RolePrivileged {
		return 0, false
	}
	now = now.In(v.rules.Location)
	earliest := now.Add(v.rules.PrivilegedLead)
	if !sameDay(earliest, now) {
		return 0, false
	}

	c := Clock(earliest.Hour()*60 + earliest.Minute())
	if earliest.Second() > 0 || earliest.Nanosecond() > 0 {
		c++
	}
	return c, true
}

// IsValid reports whether date (and optional time of day) may be booked by role at now
func (v *Validator) IsValid(role Role, date time.Time, at *Clock, now time.Time) bool {
	return v.check(role, date, at, now) == nil
}

func (v *Validator) check(role Role, date time.Time, at *Clock, now time.Time) error {
	date = midnight(date.In(v.rules.Location))
	today := v.Today(now)

	if role != RolePrivileged {
		if date.Before(v.MinimumDate(role, now)) {
			return fmt.Errorf("%w: earliest is %s", ErrTooSoon, v.MinimumDate(role, now).Format(DateLayout))
		}
		return nil
	}

	if date.Before(today) {
		return ErrDateInThePast
	}
	if !sameDay(date, today) {
		return nil
	}
	if at == nil {
		return ErrTimeRequired
	}
	if at.On(date).Sub(now) < v.rules.PrivilegedLead {
		return fmt.Errorf("%w: need at least %s from now", ErrTimeTooSoon, v.rules.PrivilegedLead)
	}
	return nil
}

// Check parses the wire date and optional time and validates them for role
func (v *Validator) Check(role Role, dateStr, timeStr string, now time.Time) error {
	if strings.TrimSpace(dateStr) == "" {
		return ErrDateRequired
	}
	date, err := ParseDate(dateStr, v.rules.Location)
	if err != nil {
		return err
	}

	var at *Clock
	if strings.TrimSpace(timeStr) != "" {
		c, err := ParseClock(timeStr)
		if err != nil {
			return err
		}
		at = &c
	}
	return v.check(role, date, at, now)
}

// Slots lists the half-hour slots of the operating window role may choose on date
func (v *Validator) Slots(role Role, date time.Time, now time.Time) []Clock {
	date = midnight(date.In(v.rules.Location))
	if date.Before(v.MinimumDate(role, now)) {
		return nil
	}

	floor := v.rules.Open
	if role == RolePrivileged && sameDay(date, v.Today(now)) {
		minimum, ok := v.MinimumTimeToday(role, now)
		if !ok {
			return nil
		}
		if minimum > floor {
			floor = minimum
		}
	}

	step := Clock(v.rules.SlotStep / time.Minute)
	var slots []Clock
	for c := v.rules.Open; c <= v.rules.Close; c += step {
		if c >= floor {
			slots = append(slots, c)
		}
	}
	return slots
}
