// Package theme owns the current light or dark theme and the colours that go with it.
//
// A [Manager] is created once at startup and passed explicitly to whatever renders output.
// The initial theme is the stored one when present, otherwise whatever the [Detector] reports,
// otherwise light. Changes are persisted and then announced to subscribers synchronously.
package theme
