package host

import (
	"errors"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newTimeModule grounds the original source's `datetime`/`time` imports
// (speedtest.py times its download/upload phases) in Go's time package.
func newTimeModule() *eval.HostModule {
	m := newModule("time")
	m.Members["now"] = &eval.HostCallable{Name: "now", Arity: 0, Fn: timeNowFn}
	m.Members["sleep"] = &eval.HostCallable{Name: "sleep", Arity: 1, Fn: timeSleepFn}
	m.Members["format"] = &eval.HostCallable{Name: "format", Arity: 2, Fn: timeFormatFn}
	return m
}

// timeNowFn returns seconds since the Unix epoch as a float, matching
// Python's time.time() convention the original source relies on for its
// elapsed-duration math.
func timeNowFn(args []eval.Value) (eval.Value, error) {
	return &eval.FloatValue{Value: float64(time.Now().UnixNano()) / 1e9}, nil
}

func timeSleepFn(args []eval.Value) (eval.Value, error) {
	secs, ok := floatArg(args[0])
	if !ok {
		return nil, errors.New("sleep() requires a number of seconds")
	}
	time.Sleep(time.Duration(secs * float64(time.Second)))
	return eval.Null, nil
}

// timeFormatFn renders an epoch-seconds float using a strftime-flavored
// layout string translated to Go's reference-time layout, limited to the
// handful of directives the original source's reporting actually uses.
func timeFormatFn(args []eval.Value) (eval.Value, error) {
	secs, ok1 := floatArg(args[0])
	layout, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("format() requires an epoch-seconds number and a layout string")
	}
	t := time.Unix(int64(secs), 0).UTC()
	return &eval.StringValue{Value: t.Format(strftimeToGo(layout.Value))}, nil
}

func strftimeToGo(layout string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006",
		"%m", "01",
		"%d", "02",
		"%H", "15",
		"%M", "04",
		"%S", "05",
	)
	return replacer.Replace(layout)
}
