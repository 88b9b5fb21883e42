/*
Package logger provides logging functionality by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, if [ColorLogger] is initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] typed/http/req/req.go:43 'decoded form body' log_context: {"data":{"fields":3}}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper,
such as the request being resolved when the logging event occurred.

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] returns a [SentryLogger],
which additionally reports errors set on a [LogContext] logged at warn level or above.
*/
package logger
