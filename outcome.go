package phpsess

import (
	"net/http"
	"reflect"
)

// Reporter receives the single outcome of an Authenticate call. Exactly one
// method is called, exactly once, possibly from a goroutine other than the
// caller's when the verify callback completes asynchronously.
type Reporter interface {
	Success(user any, info any)
	Fail(info any, status int)
	Error(err error)
}

// Outcome tags a Result.
type Outcome uint8

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFail
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFail:
		return "fail"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is an outcome captured as a value. Only the fields relevant to
// Outcome are set: User and Info for success, Info and Status for fail,
// Err for error.
type Result struct {
	Outcome Outcome
	User    any
	Info    any
	Status  int
	Err     error
}

// DoneFunc completes a verify callback. The first call decides the outcome:
// a non-nil err reports Error, a falsy user reports Fail(info), anything else
// reports Success(user, info). Later calls return ErrDoneCalledTwice and
// change nothing.
type DoneFunc func(err error, user any, info any) error

// VerifyFunc maps session attributes to a user. r is nil unless
// Config.PassReqToCallback is set. The function must call done exactly once,
// synchronously or later from any goroutine.
type VerifyFunc func(r *http.Request, attrs Attributes, done DoneFunc)

// ReporterFuncs adapts plain functions to Reporter. Nil fields are skipped.
type ReporterFuncs struct {
	OnSuccess func(user any, info any)
	OnFail    func(info any, status int)
	OnError   func(err error)
}

func (f ReporterFuncs) Success(user any, info any) {
	if f.OnSuccess != nil {
		f.OnSuccess(user, info)
	}
}

func (f ReporterFuncs) Fail(info any, status int) {
	if f.OnFail != nil {
		f.OnFail(info, status)
	}
}

func (f ReporterFuncs) Error(err error) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

// resultReporter delivers the outcome on a buffered channel so a late
// completion never blocks once the waiter has gone.
type resultReporter chan Result

func (c resultReporter) Success(user any, info any) {
	c <- Result{Outcome: OutcomeSuccess, User: user, Info: info}
}

func (c resultReporter) Fail(info any, status int) {
	c <- Result{Outcome: OutcomeFail, Info: info, Status: status}
}

func (c resultReporter) Error(err error) {
	c <- Result{Outcome: OutcomeError, Err: err}
}

// falsy treats nil, false, "" and nil pointers, maps, slices, funcs and
// interfaces as "no user".
func falsy(user any) bool {
	switch u := user.(type) {
	case nil:
		return true
	case bool:
		return !u
	case string:
		return u == ""
	}
	v := reflect.ValueOf(user)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
