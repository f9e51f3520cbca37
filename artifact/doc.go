// Package artifact abstracts the store holding uploaded audio artifacts.
// The pipeline only ever releases artifacts (best-effort deletion once a
// record reaches a terminal state); upload handling lives outside the core.
package artifact
