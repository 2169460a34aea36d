package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/volubiks/storefront/internal/catalog"
	"github.com/volubiks/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// csvProduct flattens a product for spreadsheet-friendly export: list fields
// are joined on commas.
type csvProduct struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Slug        string  `csv:"slug"`
	Price       float64 `csv:"price"`
	Currency    string  `csv:"currency"`
	Category    string  `csv:"category"`
	Featured    bool    `csv:"featured"`
	Inventory   int     `csv:"inventory"`
	Tags        string  `csv:"tags"`
	Images      string  `csv:"images"`
	Description string  `csv:"description"`
}

func usage() {
	fmt.Fprintf(os.Stderr, `datatool - catalog feed utilities

Usage:
  datatool import -in products.xlsx -out products.json
  datatool clone -in products.json -out products.json -count 20 [-id 1]
  datatool export-csv -in products.json -out products.csv
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "clone":
		err = runClone(os.Args[2:])
	case "export-csv":
		err = runExportCsv(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "datatool:", err)
		os.Exit(1)
	}
}

// runImport converts a spreadsheet feed into the normalized JSON feed.
func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "products.xlsx", "input xlsx file")
	out := fs.String("out", "products.json", "output json file")
	_ = fs.Parse(args)

	body, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	products, err := catalog.ParseWorkbook(body)
	if err != nil {
		return err
	}
	return writeJSON(*out, products)
}

// runClone replicates a template product to bulk up a demo catalog. Ids,
// names and slugs get a numeric suffix so every clone stays addressable.
func runClone(args []string) error {
	fs := flag.NewFlagSet("clone", flag.ExitOnError)
	in := fs.String("in", "products.json", "input json file")
	out := fs.String("out", "products.json", "output json file")
	count := fs.Int("count", 10, "number of clones to append")
	id := fs.String("id", "", "template product id (default: first product)")
	_ = fs.Parse(args)

	rows, err := readRows(*in)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no products in %s", *in)
	}

	template := rows[0]
	if *id != "" {
		found := false
		for _, row := range rows {
			var p domain.Product
			if decodeRow(row, &p) == nil && p.ID == *id {
				template = row
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template product %q not found", *id)
		}
	}

	var base domain.Product
	if err := decodeRow(template, &base); err != nil {
		return err
	}

	products := catalog.NormalizeRows(rows)
	for i := 1; i <= *count; i++ {
		clone := base
		suffix := strconv.Itoa(len(rows) + i)
		clone.ID = base.ID + "-" + suffix
		clone.Name = base.Name + " " + suffix
		clone.Slug = catalog.Slugify(clone.Name)
		products = append(products, clone)
	}
	return writeJSON(*out, products)
}

func runExportCsv(args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ExitOnError)
	in := fs.String("in", "products.json", "input json file")
	out := fs.String("out", "products.csv", "output csv file")
	_ = fs.Parse(args)

	rows, err := readRows(*in)
	if err != nil {
		return err
	}
	products := catalog.NormalizeRows(rows)

	flat := make([]csvProduct, 0, len(products))
	for _, p := range products {
		flat = append(flat, csvProduct{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Price:       p.Price,
			Currency:    p.Currency,
			Category:    p.Category,
			Featured:    p.Featured,
			Inventory:   p.Inventory,
			Tags:        strings.Join(p.Tags, ","),
			Images:      strings.Join(p.Images, ","),
			Description: p.Description,
		})
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&flat, f)
}

func readRows(path string) ([]map[string]interface{}, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// decodeRow maps a raw feed row onto a product, tolerating string-typed
// numbers the way spreadsheet exports produce them.
func decodeRow(row map[string]interface{}, p *domain.Product) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           p,
	})
	if err != nil {
		return err
	}
	return dec.Decode(row)
}

func writeJSON(path string, products []domain.Product) error {
	body, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0644)
}
