/*
Package operation runs a patch file over the documents it targets.

	+-------------+
	| Patch file  |
	|  (config)   |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	| (documents) |
	+------+------+
	       |
	+------+------+
	|   Engine    |
	|  (patch)    |
	+-------------+

🎯 Purpose:
- Resolves the documents a patch file targets
- Applies the patch set to each document
- Writes documents back unless the run is a dry run

🔄 Flow:
1. Resolve document globs (document.Resolve)
2. Read each document
3. Apply the patch set (patch.Engine.ApplyTo)
4. Render a diff when asked
5. Write the result, unless it failed under strict or the run is dry

⚡ Key Responsibilities:
- Bounded parallelism across documents (errgroup)
- Keeping results in document order
- Separating I/O failures from patch failures

📝 Design Philosophy:
Patches within a document always run in order on one goroutine; only
documents run in parallel. A document whose required patches failed under
strict is never written, so a failed run leaves the tree as it was.

🔍 Example:

	runner := operation.NewRunner(4)
	results, err := runner.Run(ctx, operation.Options{Config: cfg, DryRun: true})
*/
package operation
