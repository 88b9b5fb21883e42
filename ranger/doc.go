/*
Package ranger initializes and manages a typed app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].
A [Ranger] exposes the [*resp.Responder] and [*router.Router] it was configured with,
and handlers resolve request bodies with the [*req.Resolver] from [*Ranger.EmitResolver].

	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	rng.Handle(router.Route{Path: "/widgets", Method: http.MethodPost, Handler: create(rng)})
	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}

[*Ranger.Guide] begins a typed app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000).

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context set with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a typed app through environment variables and [RangerOption].
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; cross-origin requests from it are allowed; default: http://localhost:3000
  - ENVIRONMENT: the environment the application is running in; cf. [typed.Environment]
  - FORM_MAX_MEMORY: the bytes of a multipart body held in memory; default: 32 MiB
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAX_BODY_BYTES: the most bytes of a request body read; default: 1 MiB
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT: the requests per second allowed from one IP address; default: 5
  - RATE_LIMIT_BURST: the burst of requests allowed from one IP address; default: 20
  - SENTRY_DSN: the DSN errors and panics are reported to; cf. [logger.SentryLogger]
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
