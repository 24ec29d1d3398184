// Package rules builds record matchers and modifiers. NameEquals is the plain
// name comparison; Match, Rename and Annotate compile user expressions with
// expr-lang/expr so hosts can describe matching and transforms as strings.
//
// Expressions see these variables:
//
//	arg    the reference being resolved; the record's arg in Rename and Annotate
//	name   the record name
//	key    the name, or the arg for records not yet named
//	id     the record id
//	new    whether the record was synthesized by the current find
//	attrs  the record's annotations
//	scope  the scope being operated on (Rename and Annotate only)
package rules
