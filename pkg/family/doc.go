// Package family holds the read-only family tree model.
//
// A tree is a rooted hierarchy of [Person] records. The structure is a plain
// tree: no node is reachable twice and there are no cycles. Names are not
// identities. The sample data deliberately repeats "Branislav III" and
// "Branislav IV" under two different grandparents, so anything that needs to
// tell nodes apart uses their position, see [Key] and [Walk].
//
// # Loading
//
// Trees come from a [Source]. The built-in [Sample] tree is served by
// [StaticSource]; [FileSource] reads TOML, YAML or JSON files:
//
//	id = "great-grandfather"
//	name = "Branislav I"
//	role = "Great Grandfather"
//
//	[[children]]
//	name = "Branislav II"
//	role = "Grandfather"
//
// Nodes without an id get a random UUID on load. Every loaded tree passes
// [Validate] before it is handed out; callers must not mutate it afterwards.
package family
