package patch_test

import (
	"fmt"

	"github.com/walteh/patchrc/pkg/patch"
)

func ExampleEngine_Apply() {
	set := patch.MustNewSet(
		patch.Operation{ID: "greeting", Search: "Hello", Replacement: "Hi", Required: true},
		patch.Operation{ID: "subject", Search: "World", Replacement: "Universe", Required: true},
		patch.Operation{ID: "farewell", Search: "Goodbye", Replacement: "Bye", Required: true},
	)

	report, err := patch.NewEngine(patch.Lenient).Apply("Hello World! World!", set)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Content: %s\n", report.Content)
	for _, res := range report.Results {
		fmt.Printf("%s: matched=%v replaced=%d\n", res.OperationID, res.Matched, res.OccurrencesReplaced)
	}

	// Output:
	// Content: Hi Universe! Universe!
	// greeting: matched=true replaced=1
	// subject: matched=true replaced=2
	// farewell: matched=false replaced=0
}

func ExampleEngine_Apply_strict() {
	set := patch.MustNewSet(
		patch.Operation{Search: "old", Replacement: "new", Required: true},
		patch.Operation{Search: "gone", Replacement: "x", Required: true},
	)

	report, err := patch.NewEngine(patch.Strict).Apply("old text", set)

	fmt.Printf("Content: %s\n", report.Content)
	fmt.Printf("Error: %v\n", err)

	// Output:
	// Content: new text
	// Error: patch #1: patch not found
}
