// Package schema checks snapshots structurally and encodes them to and from
// their persisted JSON or YAML form.
//
// ValidateSnapshot is the commit-time check of a snapshot: unique IDs,
// transitions between existing states, payloads matching the machine kind,
// a single initial state for kinds that start from one state, and metadata
// values of the expected type. Simulation never requires it; the factories
// tolerate malformed input and report it through the result status.
//
// Basic usage:
//
//	snap, err := schema.Decode(data, schema.FormatJSON)
//	if err != nil {
//	    // Handle malformed documents
//	}
//
//	if err := schema.ValidateSnapshot(snap); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Metadata is checked field by field against the Schema of the kind. Only
// known keys are checked; unknown keys are kept untouched.
package schema
