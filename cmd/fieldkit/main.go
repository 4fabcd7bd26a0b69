// Fieldkit is a bundled toolbox of command-line utilities.
//
// It ships a single binary with independent subcommands:
//   - Expression calculator with an interactive mode
//   - Unit conversion and financial formulas
//   - Password and passphrase generation
//   - Directory organizing with watch mode and undo
//   - JSON inspection and manipulation
//   - Date arithmetic and calendars
//   - CSV statistics
//   - Web page scraping
//
// Usage:
//
//	# Evaluate an expression
//	fieldkit calc "2 + 3 * 4"
//
//	# Interactive calculator
//	fieldkit calc -i
//
//	# Organize the downloads directory
//	fieldkit organize ~/Downloads
//
//	# Keep it organized
//	fieldkit organize watch ~/Downloads
//
//	# Show version information
//	fieldkit version
//
// For complete documentation, see: https://github.com/fieldkit-hq/fieldkit
package main

func main() {
	Execute()
}
