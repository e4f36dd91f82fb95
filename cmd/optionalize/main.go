package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-optionalize/pkg/generator"
	"github.com/goliatone/go-optionalize/pkg/schema"
)

func main() {
	var (
		sourceFlag      = flag.String("source", "", "Go source file, directory, or glob to scan (comma separated for several)")
		typesFlag       = flag.String("type", "", "comma separated type names; empty selects //optionalize:derive structs")
		outputFlag      = flag.String("output", "", "output file (default <source>_optional.go)")
		packageFlag     = flag.String("package", "", "package name override for the generated file")
		configFlag      = flag.String("config", "", "path to an .optionalize.yml config file")
		interactiveFlag = flag.Bool("interactive", false, "pick struct types interactively")
		openapiFlag     = flag.Bool("openapi", false, "treat sources as OpenAPI 3 documents")
		schemasFlag     = flag.String("schema", "", "comma separated OpenAPI schema component names")
	)
	flag.Parse()

	cfg := config{
		Sources: splitList(*sourceFlag),
		Types:   splitList(*typesFlag),
		Package: *packageFlag,
		Output:  *outputFlag,
	}
	if *configFlag != "" {
		fileCfg, err := loadConfig(*configFlag)
		if err != nil {
			log.Fatalf("optionalize: %v", err)
		}
		cfg = fileCfg.merge(cfg)
	}

	// Under go generate, GOFILE names the file carrying the directive.
	if len(cfg.Sources) == 0 {
		if gofile := os.Getenv("GOFILE"); gofile != "" {
			cfg.Sources = []string{gofile}
		}
	}
	if len(cfg.Sources) == 0 {
		log.Fatal("optionalize: no sources; pass -source or run under go generate")
	}
	sources, err := expandSources(cfg.Sources)
	if err != nil {
		log.Fatalf("optionalize: %v", err)
	}
	if cfg.Output != "" && len(sources) > 1 {
		log.Fatal("optionalize: -output requires a single source")
	}

	gen := generator.New()

	// Interactive selections are tracked per source file so each file only
	// generates the types it actually declares.
	var selections map[string][]string
	if *interactiveFlag {
		selections, err = pickTypes(gen, sources)
		if err != nil {
			log.Fatalf("optionalize: %v", err)
		}
	}

	// Invocations are independent; process source files in parallel.
	g, ctx := errgroup.WithContext(context.Background())
	for _, src := range sources {
		src := src
		types := cfg.Types
		if selections != nil {
			types = selections[src]
			if len(types) == 0 {
				continue
			}
		}
		g.Go(func() error {
			return generateOne(ctx, gen, cfg, src, types, splitList(*schemasFlag), *openapiFlag)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("optionalize: %v", err)
	}
}

func generateOne(ctx context.Context, gen *generator.Generator, cfg config, src string, types, schemas []string, useOpenAPI bool) error {
	var (
		out []byte
		err error
	)
	if useOpenAPI {
		out, err = gen.GenerateOpenAPI(ctx, generator.OpenAPIRequest{
			Source:  schema.SourceFromFile(src),
			Schemas: schemas,
			Package: cfg.Package,
		})
	} else {
		out, err = gen.Generate(ctx, generator.Request{
			Source:  schema.SourceFromFile(src),
			Types:   types,
			Package: cfg.Package,
		})
	}
	if err != nil {
		if notARecord, ok := schema.AsNotARecord(err); ok {
			return errors.New(notARecord.Diagnostic())
		}
		return err
	}

	target := cfg.Output
	if target == "" {
		target = outputPath(src)
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	log.Printf("wrote %s", target)
	return nil
}

// typeChoice ties a selectable struct name back to the file declaring it.
type typeChoice struct {
	source string
	name   string
}

// typeChoices builds the selection labels offered interactively, one per
// struct per source file. With several sources the label carries the file so
// same-named structs in different files stay distinguishable.
func typeChoices(gen *generator.Generator, sources []string) ([]string, map[string]typeChoice, error) {
	var labels []string
	index := make(map[string]typeChoice)
	for _, src := range sources {
		names, err := gen.Structs(generator.Request{Source: schema.SourceFromFile(src)})
		if err != nil {
			return nil, nil, err
		}
		for _, name := range names {
			label := name
			if len(sources) > 1 {
				label = fmt.Sprintf("%s (%s)", name, src)
			}
			labels = append(labels, label)
			index[label] = typeChoice{source: src, name: name}
		}
	}
	return labels, index, nil
}

// selectionsBySource groups the chosen labels by declaring file, preserving
// declaration order within each file.
func selectionsBySource(selected []string, index map[string]typeChoice) map[string][]string {
	out := make(map[string][]string)
	for _, label := range selected {
		choice, ok := index[label]
		if !ok {
			continue
		}
		out[choice.source] = append(out[choice.source], choice.name)
	}
	return out
}

func pickTypes(gen *generator.Generator, sources []string) (map[string][]string, error) {
	labels, index, err := typeChoices(gen, sources)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.New("no struct types found")
	}

	prompt := &survey.MultiSelect{
		Message: "Select types to optionalize",
		Options: labels,
	}
	var selected []string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, errors.New("no types selected")
	}
	return selectionsBySource(selected, index), nil
}

func outputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + "_optional.go"
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
