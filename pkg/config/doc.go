/*
Package config loads patch files for patchrc.

	            +-------------+
	            | Patch file  |
	            +------+------+
	                   |
	    +--------------+--------------+
	    |              |              |
	+---+---+      +---+---+      +---+---+
	| YAML  |      | JSON  |      |  HCL  |
	+-------+      +-------+      +-------+

A patch file declares the match policy, the documents to patch and the
ordered list of patches:

	policy: strict
	documents:
	  - PlantUMLEditor/MainWindow.xaml
	patches:
	  - id: chat-header
	    search: |
	      <Button Content="New Chat"/>
	    replace: |
	      <Button Content="New"/>
	    expect: 1

Patches are required unless "required: false" is set. Order matters: a patch
sees the content produced by every patch before it.

The parser is picked by file extension. Paths of the form
"github:<owner>/<repo>/<path>[@ref]" are fetched through package remote and
parsed by the extension of <path>.
*/
package config
