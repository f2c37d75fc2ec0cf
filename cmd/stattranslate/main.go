/*
Package main is the command line interface to the stattranslate engine.

stattranslate [flags] <id=value> [<id=value> ...]:

	--create-settings            Create the default settings-stattranslate.json file
	-w, --watch                  Continually watch the input directory for relevant changes
	-h, --help                   This help prompt

The following override settings-stattranslate.json when given:

	-p, --input-path string      The directory with the translation text files
	-o, --overlay-path string    Optional directory merged over input-path after load
	-l, --lang string            The language to render in (default "English")
	-n, --number-locale string   BCP-47 tag for locale-aware number formatting

	-m, --manifest string        Manifest file listing translation files to preload
	-f, --full                   Print the full structured result instead of just the line
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/lvlvllvlvllvlvl/stattranslate/settings"
	"github.com/lvlvllvlvllvlvl/stattranslate/translate"
	"github.com/lvlvllvlvllvlvl/stattranslate/watch"
)

func main() {
	//I wish there was a way to let the process naturally return an error code without forcing the
	//exit with os.Exit()
	mainWrapper()
}

// Returns if successful
func mainWrapper() bool {
	flagCreateSettingsFile := pflag.Bool("create-settings", false, "Create the default "+settings.SettingsFileName+" file")
	flagWatch := pflag.BoolP("watch", "w", false, "Continually watch the input directory for relevant changes")
	flagShowHelp := pflag.BoolP("help", "h", false, "This help prompt")

	flagInputPath := pflag.StringP("input-path", "p", "", "The directory with the translation text files")
	flagOverlayPath := pflag.StringP("overlay-path", "o", "", "Optional directory merged over input-path after load")
	flagLang := pflag.StringP("lang", "l", "", "The language to render in")
	flagNumberLocale := pflag.StringP("number-locale", "n", "", "BCP-47 tag for locale-aware number formatting")
	flagManifest := pflag.StringP("manifest", "m", "", "Manifest file listing translation files to preload")
	flagFull := pflag.BoolP("full", "f", false, "Print the full structured result instead of just the line")

	pflag.CommandLine.SortFlags = false
	pflag.Parse()

	stdErr := func(str string) bool {
		_, _ = fmt.Fprintln(os.Stderr, str)
		return false
	}

	if *flagShowHelp {
		pflag.Usage()
		return false
	}

	if *flagCreateSettingsFile {
		if err := settings.Create(settings.SettingsFileName); err != nil {
			return stdErr(fmt.Sprintf("error creating %s: %s", settings.SettingsFileName, err))
		}
		fmt.Println("Settings file created")
		return true
	}

	s, err := settings.Load(settings.SettingsFileName)
	if err != nil {
		return stdErr(fmt.Sprintf("could not read settings file %q: %s", settings.SettingsFileName, err))
	}
	if *flagInputPath != "" {
		s.InputPath = *flagInputPath
	}
	if *flagOverlayPath != "" {
		s.OverlayPath = *flagOverlayPath
	}
	if *flagLang != "" {
		s.DefaultLanguage = *flagLang
	}
	if *flagNumberLocale != "" {
		if _, err := translate.ParseLocaleTag(*flagNumberLocale); err != nil {
			return stdErr(fmt.Sprintf("invalid --number-locale %q: %s", *flagNumberLocale, err))
		}
		s.NumberLocale = *flagNumberLocale
	}
	if *flagManifest != "" {
		s.ManifestPath = *flagManifest
	}
	if *flagWatch {
		s.Watch = true
	}

	cache := translate.NewCache(s.InputPath, s.OverlayPath)

	if s.ManifestPath != "" {
		m, err := translate.LoadManifest(s.ManifestPath)
		if err != nil {
			return stdErr(fmt.Sprintf("error loading manifest %q: %s", s.ManifestPath, err))
		}
		for _, warmErr := range cache.WarmFromManifest(m) {
			fmt.Fprintln(os.Stderr, "warning:", warmErr)
		}
	}

	ids, values, err := parseArgs(pflag.Args())
	if err != nil {
		return stdErr(err.Error())
	}

	if s.Watch {
		events := watch.Watch(cache, s.InputPath, []string{".txt"})
		for ev := range events {
			switch ev.Type {
			case watch.WR_Invalidated:
				fmt.Println(ev.Message)
			case watch.WR_Error:
				fmt.Fprintln(os.Stderr, "watch error:", ev.Err)
			case watch.WR_Message:
				fmt.Println(ev.Message)
			}
		}
		return true
	}

	if len(ids) == 0 {
		return stdErr("no id=value arguments given")
	}

	return runQuery(cache, ids, values, s, *flagFull)
}

func runQuery(cache *translate.Cache, ids []string, values []translate.Value, s settings.Settings, full bool) bool {
	//A single query always targets the default, top-level translation file by convention; named
	//argument files are a manifest concern.
	file, err := cache.Get("stat_descriptions.txt")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading translations:", err)
		return false
	}
	for _, d := range file.Diagnostics {
		fmt.Fprintln(os.Stderr, "warning:", d)
	}

	opts := translate.LocalizedOptions{
		Options:      translate.Options{Lang: s.DefaultLanguage, Full: full},
		NumberLocale: s.NumberLocale,
	}
	result, err := file.TranslateLocalized(ids, values, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return false
	}

	for _, line := range result.Lines {
		fmt.Println(line)
	}
	if full {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "\t")
		_ = enc.Encode(result)
	}
	return true
}

// parseArgs parses "id=value" or "id=lo:hi" positional arguments into parallel ids/values slices.
func parseArgs(args []string) ([]string, []translate.Value, error) {
	ids := make([]string, 0, len(args))
	values := make([]translate.Value, 0, len(args))
	for _, arg := range args {
		idPart, valuePart, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, nil, fmt.Errorf("argument %q must be in the form id=value or id=lo:hi", arg)
		}
		if lo, hi, isRange := strings.Cut(valuePart, ":"); isRange {
			loVal, err := strconv.ParseInt(lo, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("argument %q: invalid low bound: %s", arg, err)
			}
			hiVal, err := strconv.ParseInt(hi, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("argument %q: invalid high bound: %s", arg, err)
			}
			ids = append(ids, idPart)
			values = append(values, translate.NewRange(loVal, hiVal))
			continue
		}
		v, err := strconv.ParseInt(valuePart, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %q: invalid value: %s", arg, err)
		}
		ids = append(ids, idPart)
		values = append(values, translate.NewScalar(v))
	}
	return ids, values, nil
}
