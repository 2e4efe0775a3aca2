// Package vocabulary compiles YAML vocabulary documents into constants
// containers.
//
// A document declares one root container. Constants are created in document
// order, which therefore becomes the container's member order:
//
//	name: Status
//	class: verbose_value
//	constants:
//	  - name: Active
//	    value: 1
//	    verbose_name: Active
//	  - name: Review
//	    value: 2
//	    group:
//	      class: simple
//	      constants:
//	        - name: Pending
//	        - name: Rejected
//
// A file may hold several documents separated by "---".
//
// # Kinds
//
// Each constant has a kind (simple, verbose, value, verbose_value). The kind
// defaults to the class of the enclosing container, and the class defaults to
// simple. Kinds is itself a constants container describing them.
package vocabulary
