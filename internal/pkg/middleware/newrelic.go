package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// AddAttribute adds a custom attribute to the current transaction
func AddAttribute(c echo.Context, key string, value interface{}) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeError reports an error to New Relic
func NoticeError(c echo.Context, err error) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(err)
	}
}

// SetUserID sets the user ID attribute for the current transaction
func SetUserID(c echo.Context, userID string) {
	AddAttribute(c, "user.id", userID)
}

// SetTripID sets the trip ID attribute for the current transaction
func SetTripID(c echo.Context, tripID string) {
	AddAttribute(c, "trip.id", tripID)
}

// SetDriverID sets the driver ID attribute for the current transaction
func SetDriverID(c echo.Context, driverID string) {
	AddAttribute(c, "driver.id", driverID)
}

// Context returns the context from the Echo context, which includes New Relic transaction context
func Context(c echo.Context) context.Context {
	return c.Request().Context()
}

// StartSegment opens a custom segment on the transaction carried by ctx.
// The returned func ends it and is safe to call without a transaction.
func StartSegment(ctx context.Context, name string) func() {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return func() {}
	}
	segment := txn.StartSegment(name)
	return segment.End
}
