package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"labelpress/dataset"
	"labelpress/label"
	"labelpress/layout"
	"labelpress/sheet"
)

func main() {
	input := flag.String("in", "", "product spreadsheet (.xlsx)")
	output := flag.String("out", "output/labels.pdf", "PDF output path")
	logoSrc := flag.String("logo", "", "logo image, file path or http(s) URL")
	preview := flag.String("preview", "", "optional PNG preview of the first label")
	debug := flag.String("debug", "", "optional JSON dump of the run report")

	labelW := flag.String("label-w", "60mm", "label width (mm/cm/in)")
	labelH := flag.String("label-h", "80mm", "label height (mm/cm/in)")
	margin := flag.String("margin", "10mm", "page margin (mm/cm/in)")
	skuPt := flag.Float64("sku-pt", 12, "SKU font size in points")
	namePt := flag.Float64("name-pt", 10, "product name font size in points")
	ecLevel := flag.String("ec", "M", "QR error-correction level (L/M/Q/H)")
	scale := flag.Float64("scale", 4, "raster scale in pixels per millimeter")

	noQR := flag.Bool("no-qr", false, "leave out the QR codes")
	noBarcode := flag.Bool("no-barcode", false, "leave out the barcodes")
	noPhoto := flag.Bool("no-photo", false, "leave out the product photos")
	cutLines := flag.Bool("cutlines", false, "stroke cutting guides along the label grid")
	urlTemplate := flag.String("url-template", "", "fill missing target URLs, e.g. https://example.com/p/${sku}")

	parallel := flag.Bool("parallel", false, "render labels on a worker pool")
	workers := flag.Int("workers", 4, "pool size when -parallel is set")
	timeout := flag.Duration("timeout", label.DefaultFetchTimeout, "per-image download timeout")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := layout.DefaultConfig()
	cfg.LabelWidthMM = flagMM("label-w", *labelW)
	cfg.LabelHeightMM = flagMM("label-h", *labelH)
	cfg.PageMarginMM = flagMM("margin", *margin)
	cfg.SKUFontPt = *skuPt
	cfg.NameFontPt = *namePt
	cfg.PixelsPerMM = *scale
	cfg.ShowLogo = *logoSrc != ""
	cfg.ShowQR = !*noQR
	cfg.ShowBarcode = !*noBarcode
	cfg.ShowPhoto = !*noPhoto
	cfg.CutLines = *cutLines
	cfg.Parallel = *parallel
	cfg.Workers = *workers

	ec, err := layout.ParseECLevel(*ecLevel)
	if err != nil {
		log.Fatalf("flag -ec: %v", err)
	}
	cfg.EC = ec

	var tpl *dataset.Template
	if *urlTemplate != "" {
		tpl, err = dataset.ParseTemplate(*urlTemplate)
		if err != nil {
			log.Fatalf("flag -url-template: %v", err)
		}
	}

	if err := run(cfg, *input, *logoSrc, *output, *preview, *debug, tpl, *timeout); err != nil {
		log.Fatalf("label run failed: %v", err)
	}
}

// flagMM parses a length flag and reports it in millimeters.
func flagMM(name, value string) float64 {
	l, err := layout.ParseLength(value)
	if err != nil {
		log.Fatalf("flag -%s: %v", name, err)
	}
	return l.MM()
}

// run wires spreadsheet reading, label rendering and page tiling
// together.
func run(cfg layout.Config, inputPath, logoSrc, outputPath, previewPath, debugPath string, tpl *dataset.Template, timeout time.Duration) error {
	table, err := dataset.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	if len(table.Records) == 0 {
		return fmt.Errorf("spreadsheet %s has no records", inputPath)
	}
	log.Printf("%d records read from %s", len(table.Records), inputPath)
	if tpl != nil {
		tpl.FillURLs(table)
	}

	fetcher := label.NewFetcher(timeout)
	logo, err := loadLogo(logoSrc, fetcher)
	if err != nil {
		// A dead logo should not sink the whole print run.
		log.Printf("warning: logo %s unusable, labels go out without one: %v", logoSrc, err)
		logo = nil
	}

	renderer, err := label.NewRenderer(cfg, label.Options{Logo: logo, Fetcher: fetcher})
	if err != nil {
		return err
	}

	if previewPath != "" {
		if err := writePreview(renderer, table.Records[0], previewPath); err != nil {
			return err
		}
	}

	doc, report, err := sheet.Tile(table.Records, renderer, cfg)
	if err != nil {
		return err
	}

	if debugPath != "" {
		if err := writeDebug(report, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, doc, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	for _, w := range report.Warnings {
		log.Printf("warning: record %d (%s): %s: %s", w.Record, w.SKU, w.Element, w.Message)
	}
	fmt.Printf("wrote %s: %d labels on %d pages, %d warnings\n",
		outputPath, report.Labels, report.Pages, len(report.Warnings))
	return nil
}

// loadLogo reads the shared logo from a file or over HTTP. An empty
// source leaves the logo slot off every label.
func loadLogo(src string, fetcher *label.Fetcher) (image.Image, error) {
	if src == "" {
		return nil, nil
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fetcher.Fetch(src)
	}
	return imaging.Open(src)
}

// writePreview renders the first record on its own and saves it as PNG,
// the quickest way to eyeball a configuration before printing.
func writePreview(r *label.Renderer, rec dataset.Record, path string) error {
	rd, err := r.Render(rec)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	var buf bytes.Buffer
	if err := rd.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preview directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func writeDebug(report *sheet.Report, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	if err := sheet.WriteReportJSON(report, debugPath); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	return nil
}
