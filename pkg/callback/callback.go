package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxTokenLength is the largest callback payload the chat transport accepts.
const MaxTokenLength = 64

const separator = "_"

var ErrMalformedToken = errors.New("malformed callback token")

type Kind string

const (
	KindPrev   Kind = "prev"
	KindNext   Kind = "next"
	KindToday  Kind = "today"
	KindDate   Kind = "date"
	KindDelete Kind = "delete"
	KindIgnore Kind = "ignore"
)

// Action is a decoded button press.
//
// Navigation kinds (prev, next, today) carry the year and the 0-based month
// of the calendar the button belongs to. Date kinds (date, delete) carry a
// calendar day with a 1-based month, matching the order of a date key on the
// wire: day, month, year. Ignore carries nothing.
type Action struct {
	Kind  Kind
	Year  int
	Month int
	Day   int
}

func PrevMonth(year, month int) Action {
	return Action{Kind: KindPrev, Year: year, Month: month}
}

func NextMonth(year, month int) Action {
	return Action{Kind: KindNext, Year: year, Month: month}
}

func JumpToday(year, month int) Action {
	return Action{Kind: KindToday, Year: year, Month: month}
}

func SelectDate(year, month, day int) Action {
	return Action{Kind: KindDate, Year: year, Month: month, Day: day}
}

func DeleteDate(year, month, day int) Action {
	return Action{Kind: KindDelete, Year: year, Month: month, Day: day}
}

func Ignore() Action {
	return Action{Kind: KindIgnore}
}

func (a Action) args() []int {
	switch a.Kind {
	case KindPrev, KindNext, KindToday:
		return []int{a.Year, a.Month}
	case KindDate, KindDelete:
		return []int{a.Day, a.Month, a.Year}
	default:
		return nil
	}
}

func (a Action) String() string {
	return Encode(a)
}

// Encode serializes an action into its separator-joined wire form.
func Encode(a Action) string {
	fields := []string{string(a.Kind)}
	for _, arg := range a.args() {
		fields = append(fields, strconv.Itoa(arg))
	}
	return strings.Join(fields, separator)
}

// Decode splits a token into an action. It checks the tag and the number of
// fields but leaves numeric ranges to the caller.
func Decode(token string) (Action, error) {
	fields := strings.Split(token, separator)
	kind := Kind(fields[0])

	var arity int
	switch kind {
	case KindIgnore:
		arity = 0
	case KindPrev, KindNext, KindToday:
		arity = 2
	case KindDate, KindDelete:
		arity = 3
	default:
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrMalformedToken, fields[0])
	}
	if len(fields)-1 != arity {
		return Action{}, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrMalformedToken, kind, arity, len(fields)-1)
	}

	args := make([]int, arity)
	for i, field := range fields[1:] {
		v, err := strconv.Atoi(field)
		if err != nil {
			return Action{}, fmt.Errorf("%w: argument %d of %q is not a number", ErrMalformedToken, i+1, token)
		}
		args[i] = v
	}

	switch kind {
	case KindPrev, KindNext, KindToday:
		return Action{Kind: kind, Year: args[0], Month: args[1]}, nil
	case KindDate, KindDelete:
		return Action{Kind: kind, Day: args[0], Month: args[1], Year: args[2]}, nil
	default:
		return Ignore(), nil
	}
}
