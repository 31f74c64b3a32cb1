package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrBadParamInput       = errors.New("given Param is not valid")

	// the geocoder and the router are asked exactly once per operation. a
	// transport failure aborts only the operation that issued the call.
	ErrNetwork           = errors.New("could not reach external provider")
	ErrNoRouteFound      = errors.New("no route found between the selected points")
	ErrNoSupplierForCost = errors.New("neither selected point resolves to a priced supplier")
)

var MessageInternalServerError string = "internal server error"

func SecondsToMinutes(seconds float64) float64 {
	return seconds / 60
}

// FormatMinutes renders a duration as "Hh Mmin" once it crosses a full hour,
// else "Mmin".
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	if total >= 60 {
		return fmt.Sprintf("%dh %dmin", total/60, total%60)
	}
	return fmt.Sprintf("%dmin", total)
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}

// ParseLocaleFloat accepts the decimal comma the feeds use ("259,90") next
// to the plain decimal point form. Unparseable input yields 0, which the
// normalizer treats as "no price".
func ParseLocaleFloat(str string) float64 {
	str = strings.TrimSpace(strings.ReplaceAll(str, ",", "."))
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0
	}
	return val
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// FoldDiacritics lowercases s and flattens the german umlauts that show up
// in the feeds, so "Sägespäne" and "Saegespaene" match the same keyword.
func FoldDiacritics(s string) string {
	s = strings.ToLower(s)
	replacer := strings.NewReplacer(
		"ä", "a", "ö", "o", "ü", "u", "ß", "ss",
	)
	return replacer.Replace(s)
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
