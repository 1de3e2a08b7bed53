package services

import "time"

// DueDateTooEarly reports whether due falls on a calendar day strictly
// before now's calendar day. A due date equal to today is acceptable,
// which is why this is not a plain "date in the future" check.
func DueDateTooEarly(due, now time.Time) bool {
	dueY, dueM, dueD := due.Date()
	nowY, nowM, nowD := now.Date()

	dueDay := time.Date(dueY, dueM, dueD, 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(nowY, nowM, nowD, 0, 0, 0, 0, time.UTC)
	return dueDay.Before(nowDay)
}
