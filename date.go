package blog

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is given or the given one is unknown.
const DefaultLocale = "en-US"

// MonthStyle selects how the month is written.
type MonthStyle int

const (
	MonthShort MonthStyle = iota // Jan
	MonthLong                    // January
	MonthNumeric                 // 1
)

type dateOptions struct {
	locale string
	month  MonthStyle
}

// DateOption overrides a FormatDate default.
type DateOption func(*dateOptions)

// WithLocale sets the BCP 47 locale tag, e.g. "es" or "en-GB".
func WithLocale(tag string) DateOption {
	return func(o *dateOptions) {
		if tag != "" {
			o.locale = tag
		}
	}
}

// WithMonth sets the month style.
func WithMonth(style MonthStyle) DateOption {
	return func(o *dateOptions) {
		o.month = style
	}
}

type dateLocale struct {
	months [12]string
	short  [12]string
	format func(l dateLocale, t time.Time, style MonthStyle) string
}

var (
	englishMonths = [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	englishShort  = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	spanishMonths = [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	spanishShort  = [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
)

// Order matches dateMatcher's supported tags.
var dateLocales = []dateLocale{
	{
		months: englishMonths,
		short:  englishShort,
		format: func(l dateLocale, t time.Time, style MonthStyle) string {
			switch style {
			case MonthNumeric:
				return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
			case MonthLong:
				return fmt.Sprintf("%s %d, %d", l.months[t.Month()-1], t.Day(), t.Year())
			default:
				return fmt.Sprintf("%s %d, %d", l.short[t.Month()-1], t.Day(), t.Year())
			}
		},
	},
	{
		months: englishMonths,
		short:  englishShort,
		format: func(l dateLocale, t time.Time, style MonthStyle) string {
			switch style {
			case MonthNumeric:
				return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year())
			case MonthLong:
				return fmt.Sprintf("%d %s %d", t.Day(), l.months[t.Month()-1], t.Year())
			default:
				return fmt.Sprintf("%d %s %d", t.Day(), l.short[t.Month()-1], t.Year())
			}
		},
	},
	{
		months: spanishMonths,
		short:  spanishShort,
		format: func(l dateLocale, t time.Time, style MonthStyle) string {
			switch style {
			case MonthNumeric:
				return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
			case MonthLong:
				return fmt.Sprintf("%d de %s de %d", t.Day(), l.months[t.Month()-1], t.Year())
			default:
				return fmt.Sprintf("%d %s %d", t.Day(), l.short[t.Month()-1], t.Year())
			}
		},
	},
}

var dateMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.Spanish,
})

func matchLocale(tag string) dateLocale {
	t, err := language.Parse(tag)
	if err != nil {
		return dateLocales[0]
	}
	_, idx, conf := dateMatcher.Match(t)
	if conf == language.No {
		return dateLocales[0]
	}
	return dateLocales[idx]
}

// FormatDate renders t as a human readable date. The default is the en-US
// short form, e.g. "Jan 5, 2024". A zero time yields "Invalid Date".
func FormatDate(t time.Time, opts ...DateOption) string {
	o := dateOptions{locale: DefaultLocale, month: MonthShort}
	for _, opt := range opts {
		opt(&o)
	}
	if t.IsZero() {
		return "Invalid Date"
	}
	l := matchLocale(o.locale)
	return l.format(l, t, o.month)
}
