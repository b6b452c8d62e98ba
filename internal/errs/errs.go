package errs

import "errors"

var ErrInvalidToken = errors.New("invalid token")
var ErrUnauthorized = errors.New("unauthorized")
var ErrBackend = errors.New("backend request failed")

var ErrMalformedOrder = errors.New("malformed order")
var ErrOrderNotFound = errors.New("order not found")
var ErrUnknownStatus = errors.New("unknown order status")

var ErrNotPermitted = errors.New("action not permitted")
var ErrActionUnavailable = errors.New("action not available in current state")
var ErrOperationInFlight = errors.New("operation already in progress")
var ErrEmptySecurityCode = errors.New("security code is empty")

var ErrWaybillNotReady = errors.New("waybill not ready yet")
var ErrDocumentNotFound = errors.New("document not found")
