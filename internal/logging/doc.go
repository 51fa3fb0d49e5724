// Package logging provides the structured logging interface shared by the
// sampler, the presenters and the scheduler. It abstracts the zerolog
// backend so components can be tested against any Logger.
package logging
