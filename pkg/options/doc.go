// Package options maps snake_case player options onto the wavesurfer.js
// constructor options, validating names and value shapes against an explicit
// table.
package options
