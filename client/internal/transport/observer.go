package transport

import "net/http"

// Observer receives every request and response that crosses an observed
// client. Hooks may log and may derive new values, but every failure they see
// must still reach the caller as an error.
//
// Hooks run once per HTTP exchange. A fetch answered directly runs them once;
// when the server redirects, http.Client follows each Location and every hop
// is a separate exchange, so BeforeRequest and AfterResponse run once per hop.
type Observer interface {
	// BeforeRequest runs before the request is sent. Returning an error
	// rejects the call; the error is then passed to RequestError.
	BeforeRequest(req *http.Request) (*http.Request, error)
	// RequestError runs when a request could not be prepared.
	RequestError(err error) error
	// AfterResponse runs for every successful response, cached or not.
	AfterResponse(resp *http.Response) (*http.Response, error)
	// ResponseError runs for every transport failure.
	ResponseError(err error) error
}

// RejectRequest routes a preparation failure through o. A hook that returns
// nil does not swallow the failure.
func RejectRequest(o Observer, err error) error {
	if herr := o.RequestError(err); herr != nil {
		return herr
	}
	return err
}

// RejectResponse routes a transport failure through o. A hook that returns
// nil does not swallow the failure.
func RejectResponse(o Observer, err error) error {
	if herr := o.ResponseError(err); herr != nil {
		return herr
	}
	return err
}

// observingTransport invokes an Observer around the next round tripper.
type observingTransport struct {
	next     http.RoundTripper
	observer Observer
}

func (t *observingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out, err := t.observer.BeforeRequest(req)
	if err != nil {
		return nil, RejectRequest(t.observer, err)
	}
	if out == nil {
		out = req
	}

	resp, err := t.next.RoundTrip(out)
	if err != nil {
		return nil, RejectResponse(t.observer, err)
	}

	annotated, err := t.observer.AfterResponse(resp)
	if err != nil {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}
	if annotated == nil {
		return resp, nil
	}
	return annotated, nil
}
