// Package props is the query engine over a set of property areas.
//
// A Store answers three kinds of queries:
//
//   - List: walk every region, filter the records by a glob and sort them by
//     name.
//   - Get: resolve one name in the region its label maps to.
//   - Update / Set / SetCount: change a value or counter in place, creating
//     the name when it is missing.
//
// # Region layout
//
// From SDK 24 on, each security label owns one region file named after the
// label under Config.Root. Older releases keep every record in a single file
// at Config.Root itself. The label of a name comes from the platform context
// catalog when one is available, otherwise from label definition files (see
// package labels).
//
// # Example
//
//	s, err := props.New(props.Config{WantLabels: true})
//	if err != nil {
//		return err
//	}
//	recs, err := s.List(ctx, "ro.boot.*")
//	res, err := s.Set(ctx, "persist.sys.locale", "en-US")
//
// Mutations require an elevated caller (Config.IsPrivileged) and write
// through a shared mapping, so other readers of the region see the change
// immediately. Nothing serializes concurrent writers.
package props
