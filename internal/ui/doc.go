// Package ui provides the color themes shared by the command line output and
// the profile view. It honors NO_COLOR and --no-color.
package ui
