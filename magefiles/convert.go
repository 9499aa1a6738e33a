//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const sampleDir = "sample"

// sampleWiki is a small VimWiki tree exercising every rewrite rule.
var sampleWiki = map[string]string{
	"index.wiki": `= Index =

* [[projects/alpha|Alpha project]]
* [[diary:2026-01-05]]
* [[https://github.com/nvim-neorg/neorg|Neorg]]

== Tasks ==
* [ ] write the report
  * [X] collect data
`,
	"projects/alpha.wiki": `= Alpha =

See [[/index#Tasks|the task list]].

{{{python
= this is code, not a heading =
print("[[not a link]]")
}}}
`,
	"diary/2026-01-05.wiki": `== 2026-01-05 ==
# first
# second
`,
}

// Sample writes a small VimWiki tree under sample/vimwiki.
func Sample() error {
	root := filepath.Join(sampleDir, "vimwiki")
	for rel, content := range sampleWiki {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Sample wiki written.")
	return nil
}

// Convert builds the CLI and converts sample/vimwiki into sample/neorg,
// writing a manifest next to it.
func Convert() error {
	mg.Deps(Build, Sample)
	return sh.RunV(filepath.Join(binDir, binName), "convert",
		filepath.Join(sampleDir, "vimwiki"),
		filepath.Join(sampleDir, "neorg"),
		"--manifest", filepath.Join(sampleDir, "manifest.yaml"),
	)
}

// Clean removes build output and the generated sample.
func Clean() error {
	for _, dir := range []string{binDir, sampleDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
