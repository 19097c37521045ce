/*
Package ccash is a typed client for the HTTP API of a CCash ledger server.

[Session] represents the connection to one CCash instance. Construct it with
[NewSession], then call [Session.EstablishConnection] once before using any
endpoint wrapper; establishment fetches the instance's [SessionProperties] and
opens the HTTP transport. Multiple sessions against different instances are
independent and need no coordination.

Credentials are [User] values, created with [NewUser] (which enforces the
server's username rules and strips spaces from passwords) or with
[NewUserUnchecked] when the input is already trusted, for example usernames
returned by the server itself. Requests authenticate with HTTP basic auth.

Each remote operation has one wrapper function, for example [GetBalance],
[SendFunds] or [AdminSetBalance]. Admin wrappers take a separate admin
credential; the library does not check admin status locally and relies on the
server rejecting unauthorized calls. Server rejections surface as
[*ServerError] carrying the HTTP status and the verbatim response body,
except for the documented cases where a specific status is the server's way
of answering "no" to a yes/no question (see [ErrorInterpretation]).

The library performs exactly one HTTP round trip per call and never retries;
callers that want retries or tracing can supply their own [net/http.Client]
via the Session's Client field (see the util package for ready-made ones).
*/
package ccash
