// Package release models release tracks and the datasets that describe them.
//
// A dataset is a mapping from track name to up to five milestone dates:
//
//	{
//	  "v18": {"start": "2022-04-19", "lts": "2022-10-25", "supported": "2023-10-18", "end": "2025-04-30"},
//	  "v19": {"start": "2022-10-18", "supported": "2023-04-01", "end": "2023-06-01"}
//	}
//
// The keys map to milestones as follows:
//
//   - unstable_start: [Milestones.UnstableStart]
//   - start:          [Milestones.ActiveStart]
//   - lts:            [Milestones.LTSStart]
//   - supported:      [Milestones.MaintenanceStart]
//   - end:            [Milestones.End]
//
// Track order is significant. Every decoder in this package preserves the
// document order of the top-level mapping so that charts list tracks the way
// the dataset author wrote them.
//
// Datasets can be written as JSON ([ReadJSON]), YAML ([ReadYAML]) or TOML
// ([ReadTOML]). [Load] picks a decoder from the file extension.
package release
