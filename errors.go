package phpsess

import "errors"

// NoSessionMessage is the Fail info reported when the request carries no
// usable PHP session.
const NoSessionMessage = "PHP session not found, maybe not login yet."

var (
	// ErrNoSession is the Fail reason when the session cookie is absent or the store has no record.
	ErrNoSession = errors.New("no session found")
	// ErrMalformedRecord wraps decoder failures; reported as an Error outcome.
	ErrMalformedRecord = errors.New("malformed session record")
	// ErrStoreFault wraps session store failures other than a missing key; reported as an Error outcome.
	ErrStoreFault = errors.New("session store fault")
	// ErrCallbackFault wraps the error a verify callback passes to done; reported as an Error outcome.
	ErrCallbackFault = errors.New("verify callback failed")
	// ErrDoneCalledTwice is returned by a DoneFunc on every call after the first.
	ErrDoneCalledTwice = errors.New("done called more than once")
	// ErrStrategyNotReady is reported when Authenticate runs on a nil or unbuilt strategy.
	ErrStrategyNotReady = errors.New("strategy not initialized")
	// ErrBuilderUsed is returned by Build on a second call.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
)
