package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// EchoMiddleware starts a transaction per request; a nil app yields a pass-through middleware
func EchoMiddleware(app *newrelic.Application) echo.MiddlewareFunc {
	if app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(app)
}

// FromContext returns the transaction carried by ctx, if any
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// StartDatastoreSegment times a database or cache operation. The returned func ends it
// and is a no-op without a transaction.
func StartDatastoreSegment(ctx context.Context, product newrelic.DatastoreProduct, collection, operation string) func() {
	txn := FromContext(ctx)
	if txn == nil {
		return func() {}
	}
	segment := &newrelic.DatastoreSegment{
		StartTime:  txn.StartSegmentNow(),
		Product:    product,
		Collection: collection,
		Operation:  operation,
	}
	return segment.End
}

// StartPostgresSegment times a Postgres query
func StartPostgresSegment(ctx context.Context, table, operation string) func() {
	return StartDatastoreSegment(ctx, newrelic.DatastorePostgres, table, operation)
}

// StartRedisSegment times a Redis command
func StartRedisSegment(ctx context.Context, key, operation string) func() {
	return StartDatastoreSegment(ctx, newrelic.DatastoreRedis, key, operation)
}

// StartPublishSegment times a message publish on the live feed bus
func StartPublishSegment(ctx context.Context, subject string) func() {
	txn := FromContext(ctx)
	if txn == nil {
		return func() {}
	}
	segment := &newrelic.MessageProducerSegment{
		StartTime:       txn.StartSegmentNow(),
		Library:         "NATS",
		DestinationType: newrelic.MessageTopic,
		DestinationName: subject,
	}
	return segment.End
}
