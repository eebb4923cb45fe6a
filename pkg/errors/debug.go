package errors

import (
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	StoreStatus int `json:"store_status,omitempty"`
}

// statusCarrier is implemented by record-store errors that captured the
// upstream HTTP status.
type statusCarrier interface {
	HTTPStatus() int
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
		if sc, ok := e.(statusCarrier); ok && d.StoreStatus == 0 {
			d.StoreStatus = sc.HTTPStatus()
		}
	}

	return d
}
