// Command translate manages the localization catalogs. It mirrors the
// pybabel-style workflow: extract messages into per-language catalogs
// with gotext and compile them for the server.
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

const localesDir = "internal/locales"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		if len(os.Args) < 3 {
			log.Fatal("init requires a language code, e.g. translate init es")
		}
		err = update([]string{os.Args[2]})
	case "update":
		err = update(languages())
	case "compile":
		err = update(languages(), "-out", localesDir+"/catalog.go")
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("translate %s failed: %v", os.Args[1], err)
	}
}

// update shells out to the gotext tool, which extracts translatable
// messages from the source tree and merges them into the catalogs.
func update(langs []string, extra ...string) error {
	if len(langs) == 0 {
		return fmt.Errorf("no languages configured, set LANGUAGES")
	}

	args := []string{"update", "-srclang", "en", "-dir", localesDir,
		"-lang", strings.Join(langs, ",")}
	args = append(args, extra...)
	args = append(args, "./...")

	cmd := exec.Command("gotext", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func languages() []string {
	raw := os.Getenv("LANGUAGES")
	if raw == "" {
		raw = "en,es"
	}
	var langs []string
	for _, lang := range strings.Split(raw, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: translate <init <lang> | update | compile>")
}
