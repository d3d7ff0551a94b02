// Package cli turns the xspec command line into an app.Config. Bad flags and
// invalid settings become an ExitError carrying exit code 2; help and an
// empty command line print usage and request a clean exit.
package cli
