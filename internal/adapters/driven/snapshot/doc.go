// Package snapshot reads library snapshots from YAML or JSON files and
// watches them for changes.
//
// A snapshot file is the hand-off point from the ingestion pipeline: it
// lists taxonomy terms, documents and derived entities with their tags
// inline. The loader is strict: unknown fields, duplicate ids and unknown
// kinds are rejected with a hint rather than silently dropped.
//
//	terms:
//	  topics:
//	    - {id: ai, name: Artificial Intelligence}
//	documents:
//	  - id: D1
//	    title: Future of work
//	    owner: u1
//	    visibility: SELECTED_USERS
//	    shared_with: [u2]
//	    tags: {topics: [ai]}
//	derived:
//	  - kind: driver
//	    name: Ageing society
//	    derived_from: D1
//	    tags: {steep: [social]}
package snapshot
