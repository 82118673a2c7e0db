// Package console provides the client-side state core for a user-management
// console: session stores, a shared request lifecycle, route guards, and a
// notification bridge. The HTTP backend, the views, and the notification
// renderer are collaborators behind interfaces.
//
// Stores:
//   - SessionStore owns the end-user identity; AdminStore owns the admin
//     identity plus the user roster and its CRUD operations. Both embed the
//     same lifecycle runner: one API call per dispatch, terminal outcome
//     folded atomically with any state mutation, tri-state RequestStatus
//     (idle, pending, success, error) with an idempotent Reset.
//   - Identities persist to a Vault keyed by role and rehydrate at store
//     construction; stale tokens are discarded instead of rehydrated.
//
// Guards:
//   - RouteGuard re-evaluates identity presence on every navigation.
//     Protected redirects anonymous visitors to the login route; AnonymousOnly
//     sends authenticated visitors to the landing route.
//
// Notifications:
//   - NotificationBridge surfaces each resolved request's message exactly
//     once through a Notifier sink and schedules a cancellable reset, so a
//     message never resurfaces on an unrelated re-read. Pending state never
//     fires; a newer terminal status supersedes a scheduled dismissal.
package console
