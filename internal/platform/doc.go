// Package platform provides the filesystem primitives the record store relies
// on: existence checks, listing a directory's immediate children split into
// directories and files, and permission handling that degrades to a no-op on
// Windows.
package platform
