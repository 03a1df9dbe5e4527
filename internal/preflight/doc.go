// Package preflight provides readiness checks for the external tools and
// filesystem paths that songbook depends on.
//
// The checks run in two contexts:
//   - The link and process commands call RequireTools before touching a song,
//     so a missing encoder surfaces immediately instead of mid-run.
//   - The CLI "songbook deps" command renders CheckSystemDeps and RunAll
//     results as tables.
package preflight
