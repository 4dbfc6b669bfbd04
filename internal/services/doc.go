// Package services holds the error taxonomy shared by pipeline phases and
// the external-tool wrappers built on top of it.
package services
