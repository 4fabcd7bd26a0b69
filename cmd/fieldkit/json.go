package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/jsonutil"
)

var jsonFlags struct {
	output    string
	indent    int
	separator string
	key       string
	value     string
	delimiter string
}

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Inspect and manipulate JSON files",
	Long: `Inspect and manipulate JSON files with dotted paths.

Paths use dots for object keys and brackets for array indexes:
"users[0].address.city".

Subcommands:
  get      - read the value at a path
  set      - write a value at a path
  delete   - remove the value at a path
  search   - find paths by key or value
  flatten  - flatten nested structure to dotted keys
  tree     - render the structure as a tree
  diff     - structural comparison of two files
  to-csv   - convert an array of records to CSV
  pretty   - reformat with indentation
  minify   - reformat without whitespace

Examples:
  fieldkit json get data.json "users[0].name"
  fieldkit json set data.json "users[0].age" 31 --output data.json
  fieldkit json search data.json --key email
  fieldkit json diff old.json new.json`,
}

var jsonGetCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Read the value at a path",
	Args:  cobra.ExactArgs(2),
	RunE:  runJSONGet,
}

var jsonSetCmd = &cobra.Command{
	Use:   "set <file> <path> <value>",
	Short: "Write a value at a path",
	Long: `Write a value at a path. The value is parsed as JSON, so numbers,
booleans, arrays and objects are typed; anything unparseable becomes a
string. Without --output the modified document prints to stdout.`,
	Args: cobra.ExactArgs(3),
	RunE: runJSONSet,
}

var jsonDeleteCmd = &cobra.Command{
	Use:   "delete <file> <path>",
	Short: "Remove the value at a path",
	Args:  cobra.ExactArgs(2),
	RunE:  runJSONDelete,
}

var jsonSearchCmd = &cobra.Command{
	Use:   "search <file>",
	Short: "Find paths by key or value",
	Args:  cobra.ExactArgs(1),
	RunE:  runJSONSearch,
}

var jsonFlattenCmd = &cobra.Command{
	Use:   "flatten <file>",
	Short: "Flatten nested structure to dotted keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runJSONFlatten,
}

var jsonTreeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Render the structure as a tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runJSONTree,
}

var jsonDiffCmd = &cobra.Command{
	Use:   "diff <file1> <file2>",
	Short: "Structural comparison of two files",
	Args:  cobra.ExactArgs(2),
	RunE:  runJSONDiff,
}

var jsonToCSVCmd = &cobra.Command{
	Use:   "to-csv <file>",
	Short: "Convert an array of records to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runJSONToCSV,
}

var jsonPrettyCmd = &cobra.Command{
	Use:   "pretty <file>",
	Short: "Reformat with indentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runJSONPretty,
}

var jsonMinifyCmd = &cobra.Command{
	Use:   "minify <file>",
	Short: "Reformat without whitespace",
	Args:  cobra.ExactArgs(1),
	RunE:  runJSONMinify,
}

func init() {
	rootCmd.AddCommand(jsonCmd)
	jsonCmd.AddCommand(jsonGetCmd, jsonSetCmd, jsonDeleteCmd, jsonSearchCmd,
		jsonFlattenCmd, jsonTreeCmd, jsonDiffCmd, jsonToCSVCmd,
		jsonPrettyCmd, jsonMinifyCmd)

	jsonCmd.PersistentFlags().StringVarP(&jsonFlags.output, "output", "o", "", "write the result to a file instead of stdout")
	jsonCmd.PersistentFlags().IntVar(&jsonFlags.indent, "indent", 2, "indentation width for JSON output")

	jsonSearchCmd.Flags().StringVar(&jsonFlags.key, "key", "", "key name to search for")
	jsonSearchCmd.Flags().StringVar(&jsonFlags.value, "value", "", "value to search for (parsed as JSON)")

	jsonFlattenCmd.Flags().StringVar(&jsonFlags.separator, "separator", ".", "key separator")

	jsonToCSVCmd.Flags().StringVar(&jsonFlags.delimiter, "delimiter", ",", "CSV field delimiter")
}

// parseJSONValue types a command-line value: valid JSON literals keep
// their type, everything else is a string.
func parseJSONValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// emitNavigator writes the document to --output or stdout.
func emitNavigator(n *jsonutil.Navigator) error {
	if jsonFlags.output != "" {
		return n.Save(jsonFlags.output, jsonFlags.indent)
	}
	encoded, err := n.Encode(jsonFlags.indent)
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func emitText(s string) error {
	if jsonFlags.output != "" {
		return os.WriteFile(jsonFlags.output, []byte(s), 0o644)
	}
	fmt.Print(s)
	return nil
}

func runJSONGet(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	value, ok := navigator.Get(args[1])
	if !ok {
		return cli.NewCommandError("json", fmt.Errorf("path %q not found", args[1]))
	}

	encoded, err := json.MarshalIndent(value, "", spaces(jsonFlags.indent))
	if err != nil {
		return cli.NewCommandError("json", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func runJSONSet(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	if err := navigator.Set(args[1], parseJSONValue(args[2])); err != nil {
		return cli.NewCommandError("json", err)
	}
	if err := emitNavigator(navigator); err != nil {
		return cli.NewCommandError("json", err)
	}
	return nil
}

func runJSONDelete(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	if err := navigator.Delete(args[1]); err != nil {
		return cli.NewCommandError("json", err)
	}
	if err := emitNavigator(navigator); err != nil {
		return cli.NewCommandError("json", err)
	}
	return nil
}

func runJSONSearch(cmd *cobra.Command, args []string) error {
	if jsonFlags.key == "" {
		return cli.NewUsageError("json", "search requires --key (optionally narrowed by --value)")
	}

	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	var value any
	if jsonFlags.value != "" {
		value = parseJSONValue(jsonFlags.value)
	}

	paths := navigator.Search(jsonFlags.key, value)
	if len(paths) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, path := range paths {
		fmt.Println(path)
	}
	return nil
}

func runJSONFlatten(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	flat := navigator.Flatten(jsonFlags.separator)
	encoded, err := json.MarshalIndent(flat, "", spaces(jsonFlags.indent))
	if err != nil {
		return cli.NewCommandError("json", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func runJSONTree(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}
	fmt.Print(navigator.Tree())
	return nil
}

func runJSONDiff(cmd *cobra.Command, args []string) error {
	left, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}
	right, err := jsonutil.FromFile(args[1])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	diffs := jsonutil.Compare(left.Data(), right.Data())
	if len(diffs) == 0 {
		fmt.Println("Files are structurally identical.")
		return nil
	}
	for _, diff := range diffs {
		fmt.Println(diff)
	}
	return cli.NewCommandError("json", fmt.Errorf("%d differences found", len(diffs)))
}

func runJSONToCSV(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	delimiter := ','
	if jsonFlags.delimiter != "" {
		delimiter = []rune(jsonFlags.delimiter)[0]
	}

	csvText, err := jsonutil.RecordsToCSV(navigator.Data(), delimiter)
	if err != nil {
		return cli.NewCommandError("json", err)
	}
	if err := emitText(csvText); err != nil {
		return cli.NewCommandError("json", err)
	}
	return nil
}

func runJSONPretty(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}
	if err := emitNavigator(navigator); err != nil {
		return cli.NewCommandError("json", err)
	}
	return nil
}

func runJSONMinify(cmd *cobra.Command, args []string) error {
	navigator, err := jsonutil.FromFile(args[0])
	if err != nil {
		return cli.NewCommandError("json", err)
	}

	jsonFlags.indent = 0
	if err := emitNavigator(navigator); err != nil {
		return cli.NewCommandError("json", err)
	}
	return nil
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
