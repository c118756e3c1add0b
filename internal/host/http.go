package host

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newHTTPModule grounds the original source's urllib.request usage in
// Go's net/http client. No third-party HTTP client appears anywhere in the
// reference pack, so this module is built directly on the standard library
// (recorded in the design notes).
func newHTTPModule() *eval.HostModule {
	m := newModule("http")
	client := &http.Client{Timeout: 15 * time.Second}
	m.Members["get"] = &eval.HostCallable{Name: "get", Arity: 1, Fn: httpGetFn(client)}
	m.Members["post"] = &eval.HostCallable{Name: "post", Arity: 2, Fn: httpPostFn(client)}
	return m
}

func httpGetFn(client *http.Client) eval.HostFunc {
	return func(args []eval.Value) (eval.Value, error) {
		url, ok := args[0].(*eval.StringValue)
		if !ok {
			return nil, errors.New("get() requires a URL string")
		}
		resp, err := client.Get(url.Value)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return httpResponseDict(resp.StatusCode, string(body), resp.Header), nil
	}
}

func httpPostFn(client *http.Client) eval.HostFunc {
	return func(args []eval.Value) (eval.Value, error) {
		url, ok1 := args[0].(*eval.StringValue)
		body, ok2 := args[1].(*eval.StringValue)
		if !ok1 || !ok2 {
			return nil, errors.New("post() requires a URL and body string")
		}
		resp, err := client.Post(url.Value, "application/json", strings.NewReader(body.Value))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return httpResponseDict(resp.StatusCode, string(respBody), resp.Header), nil
	}
}

func httpResponseDict(status int, body string, header http.Header) *eval.DictValue {
	d := eval.NewDict()
	d.Set(&eval.StringValue{Value: "status"}, eval.NewInt(int64(status)))
	d.Set(&eval.StringValue{Value: "body"}, &eval.StringValue{Value: body})
	headers := eval.NewDict()
	for k := range header {
		headers.Set(&eval.StringValue{Value: k}, &eval.StringValue{Value: header.Get(k)})
	}
	d.Set(&eval.StringValue{Value: "headers"}, headers)
	return d
}

