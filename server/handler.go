package server

import (
	"http-server/http"

	"github.com/pkg/errors"
)

// HandleFunc maps one parsed request to the response to serialize. It must
// not return nil; there is no route that produces no response.
type HandleFunc func(request *http.Request) *http.Response

func doHandle(handle HandleFunc, request *http.Request) (response *http.Response, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("handler panicked: %s", e)
		}
	}()

	response = handle(request)
	if response == nil {
		return nil, errors.New("nil response is forbidden")
	}

	return response, nil
}
