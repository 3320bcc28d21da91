// Package interactive is the full-screen terminal dashboard of sakdash.
//
// The TUI provides:
//   - Catalog view for browsing the backend command tree
//   - Sessions view with one panel per opened command, argument forms and
//     rendered results
//   - Plugins view listing what the backend has loaded
//   - History view with every finished call
//   - Log viewer for activity monitoring
//
// Launch with: sakdash ui (or sakdash tui)
package interactive
