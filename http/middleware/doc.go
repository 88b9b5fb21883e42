/*
The middleware package defines what a middleware is in typed and a set of basic middlewares.

The available middlewares are:
- CORS
- InjectIPAddress
- LimitBody
- LogRequest
- RateLimit
- ReportPanic
- RequestID

A ranger.Ranger applies this chain to every request, with every route recovering panics through ReportPanic:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.CORS(baseURL),
		middleware.LogRequest(log),
		middleware.LimitBody(maxBodyBytes),
	}
*/
package middleware
