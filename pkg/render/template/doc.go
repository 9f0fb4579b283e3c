// Package template defines the template engine contract used by the document
// assembler. The gotemplate subpackage implements it on top of pongo2.
package template
