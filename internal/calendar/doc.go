// Package calendar exports conference records as an iCalendar (RFC 5545) feed.
// Each conference with a parseable start date becomes an all-day VEVENT.
package calendar
