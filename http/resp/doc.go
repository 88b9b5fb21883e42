/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp responds to an HTTP request in two ways:
- rendering JSON data
- rendering an error as JSON, with the status code it carries

An error carrying a status code, such as a *req.Error from resolving a request body,
is written with that status.
Errors carrying req.ValidationErrors list them under "validationErrors".
*/
package resp
