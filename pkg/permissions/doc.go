// Package permissions implements the static permission catalog: a
// process-wide tree of colon-segmented identifiers built once at startup
// from declarative definitions (code-level Def values or a YAML document).
//
// A catalog node addresses an operation like "api:iam:users:read". Segments
// written as "{name}" are placeholders that must be substituted with
// concrete values before the path can be evaluated:
//
//	node, _ := catalog.Find("api:iam:users:{userId}:write")
//	path, err := node.BuildPath(map[string]string{"userId": "42"})
//	// path == "api:iam:users:42:write"
//
// The catalog enforces two invariants at build time: every path is unique,
// and a placeholder name never repeats along a root-to-leaf chain. After New
// returns, the tree is immutable and safe for unsynchronized concurrent
// reads. Construct it during application bootstrap and pass it to the
// resolver and enforcement layers as an explicit dependency.
//
// Tree returns a JSON-ready projection of the catalog for administrative
// listing endpoints; it carries no engine logic.
package permissions
