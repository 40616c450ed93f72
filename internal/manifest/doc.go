// Package manifest loads object-store manifests written in CUE.
//
// A manifest declares classes with optional ancestry and the objects to
// seed the store with:
//
//	class: {
//		Animal: {}
//		Dog: {extends: ["Animal"]}
//	}
//
//	object: [
//		{class: "Dog", id: "1", fields: {name: "Rex"}},
//	]
//
// Objects declared without an id are assigned a generated one at load
// time. Validation rejects unknown ancestors, inheritance cycles, and
// duplicate ids within a class. Build materializes a validated manifest
// into a memrepo.Registry: every class is registered first, then stores
// are constructed and objects inserted, so fan-out observes the complete
// hierarchy.
package manifest
