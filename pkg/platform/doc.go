// Package platform provides the in-process collaborators a modal talks to:
// an event channel carrying raw platform events, the on-screen keyboard
// feed, hardware back-button dispatch and the full-screen presentation
// surface.
//
// Hosts push raw events into the services (for example a keyboard frame map
// received from native code) and the services fan them out to subscribers.
// Subscriber callbacks run synchronously on the goroutine that emitted the
// event, which must be the host's event-loop goroutine when a modal is
// subscribed. A panicking subscriber is reported through the errors package
// and does not stop delivery to the remaining subscribers.
package platform
