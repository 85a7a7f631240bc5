// roastqr generates QR codes that update the "Roasting Now" display: each
// code encodes GET {base}/api/roast?item={name}. With --menu it also emits a
// 6-up print-ready HTML sheet referencing the generated PNGs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Roast QR Codes - Print Sheet</title>
<style>
@page { size: letter; margin: 0.5in; }
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: Georgia, serif; }
.grid { display: grid; grid-template-columns: 1fr 1fr; }
.cell { height: 3.33in; display: flex; flex-direction: column; align-items: center;
        justify-content: center; border: 1px dashed #999; page-break-inside: avoid; }
.cell img { width: 2.2in; height: 2.2in; }
.cell .name { font-size: 18pt; font-weight: bold; margin-top: 0.15in; }
</style>
</head>
<body>
<div class="grid">
{{range .}}<div class="cell">
  <img src="{{.File}}" alt="{{.Name}}">
  <div class="name">{{.Name}}</div>
</div>
{{end}}</div>
</body>
</html>
`))

type sheetEntry struct {
	Name string
	File string
}

func main() {
	baseURL := flag.String("base-url", "", "base URL of the deployed display service")
	roast := flag.String("roast", "", "single roast name to encode")
	menuFile := flag.String("menu", "", "JSON file with roast names; generates one QR each plus a print sheet")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("--base-url is required")
	}
	if *roast == "" && *menuFile == "" {
		log.Fatal("pass --roast or --menu")
	}

	base := strings.TrimRight(*baseURL, "/")

	var names []string
	if *roast != "" {
		names = []string{*roast}
	} else {
		data, err := os.ReadFile(*menuFile)
		if err != nil {
			log.Fatalf("cannot read %s: %v", *menuFile, err)
		}
		if err := json.Unmarshal(data, &names); err != nil {
			log.Fatalf("%s is not a JSON array of names: %v", *menuFile, err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	var entries []sheetEntry
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		target := fmt.Sprintf("%s/api/roast?item=%s", base, url.QueryEscape(name))
		file := slugify(name) + "_qr.png"
		path := filepath.Join(*outDir, file)

		if err := qrcode.WriteFile(target, qrcode.Medium, 512, path); err != nil {
			log.Fatalf("qr for %q: %v", name, err)
		}

		fmt.Printf("wrote %s -> %s\n", path, target)
		entries = append(entries, sheetEntry{Name: name, File: file})
	}

	if *menuFile != "" {
		sheetPath := filepath.Join(*outDir, "print_sheet.html")
		f, err := os.Create(sheetPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		if err := sheetTemplate.Execute(f, entries); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%d codes)\n", sheetPath, len(entries))
	}
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
