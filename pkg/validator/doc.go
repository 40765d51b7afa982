// Package validator provides a small declarative rule engine for validating
// decoded request bodies field by field.
//
// Every exported helper constructs a Rule value pairing a boolean Check with
// the field-level error to report when the check fails. Rules are evaluated
// with Apply, which aggregates every failure into a ValidationErrors slice
// satisfying the error interface, so a single error return carries the
// complete set of violations rather than just the first one.
//
// There is no hidden state: rules are plain values, and the package is safe
// for concurrent use.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("title", title),
//	    validator.MaxLenString("title", title, 100),
//	    validator.MinNum("priority", priority, 1),
//	)
//	if err != nil {
//	    if verrs := validator.Extract(err); verrs != nil {
//	        // iterate field-level messages
//	    }
//	}
package validator
