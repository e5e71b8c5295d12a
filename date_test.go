package blog

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	jan5 := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	sep30 := time.Date(2023, time.September, 30, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		opts []DateOption
		want string
	}{
		{"default", jan5, nil, "Jan 5, 2024"},
		{"long month", jan5, []DateOption{WithMonth(MonthLong)}, "January 5, 2024"},
		{"numeric", jan5, []DateOption{WithMonth(MonthNumeric)}, "1/5/2024"},
		{"en alias", jan5, []DateOption{WithLocale("en")}, "Jan 5, 2024"},
		{"british", jan5, []DateOption{WithLocale("en-GB")}, "5 Jan 2024"},
		{"british numeric", jan5, []DateOption{WithLocale("en-GB"), WithMonth(MonthNumeric)}, "05/01/2024"},
		{"spanish", sep30, []DateOption{WithLocale("es")}, "30 sept 2023"},
		{"spanish long", jan5, []DateOption{WithLocale("es"), WithMonth(MonthLong)}, "5 de enero de 2024"},
		{"unknown locale", jan5, []DateOption{WithLocale("ja-JP")}, "Jan 5, 2024"},
		{"malformed locale", jan5, []DateOption{WithLocale("not a tag!")}, "Jan 5, 2024"},
		{"empty locale keeps default", jan5, []DateOption{WithLocale("")}, "Jan 5, 2024"},
		{"zero", time.Time{}, nil, "Invalid Date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t, tt.opts...); got != tt.want {
				t.Errorf("FormatDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDateIgnoresClock(t *testing.T) {
	morning := time.Date(2024, 1, 5, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC)
	if FormatDate(morning) != FormatDate(night) {
		t.Errorf("same day formatted differently: %q vs %q", FormatDate(morning), FormatDate(night))
	}
}
