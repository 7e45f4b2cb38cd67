package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"hostbind/internal"
	"hostbind/internal/generation"
	"hostbind/internal/metadata"
)

type cli struct {
	Manifest     string `help:"The path of the property manifest to read." default:"hostbind.yaml" env:"HOSTBIND_MANIFEST"`
	Registry     string `help:"Registry address used to download the manifest when the file does not exist. Registry manifests are YAML, so the manifest path must then end in .yaml or .yml." env:"HOSTBIND_REGISTRY"`
	ManifestName string `help:"Name the manifest is published under in the registry." default:"hostbind" env:"HOSTBIND_MANIFEST_NAME"`
	PackageName  string `help:"The name of the package with generated code." default:"bindings"`
	HostPackage  string `help:"Import path of the runtime package the generated code registers into." default:"hostbind/host"`
	OutputPath   string `help:"The path where all generated files will be placed." default:"./output/"`
	ForceClean   bool   `help:"If given forces cleaning the output directory before generation."`
	LogLevel     string `help:"Log level." default:"info" enum:"debug,info,warn,error"`
}

func main() {
	var flags cli
	ctx := kong.Parse(&flags,
		kong.Name("hostbind"),
		kong.Description("Generates host property bindings from a manifest."),
		kong.UsageOnError(),
		// Flags override values loaded from config files.
		kong.Configuration(kongyaml.Loader, ".hostbind.yaml"),
		kong.Configuration(kongtoml.Loader, ".hostbind.toml"),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: internal.ParseLogLevel(flags.LogLevel),
	}))

	ctx.FatalIfErrorf(run(flags, logger))
}

func run(flags cli, logger *slog.Logger) error {
	if _, err := os.Stat(flags.Manifest); errors.Is(err, os.ErrNotExist) {
		if flags.Registry == "" {
			return fmt.Errorf("manifest %s does not exist and no registry is configured", flags.Manifest)
		}

		logger.Info("Manifest not found, downloading", "registry", flags.Registry, "name", flags.ManifestName)
		if err := metadata.DownloadManifest(flags.Registry, flags.ManifestName, flags.Manifest); err != nil {
			return err
		}
	}

	manifest, err := metadata.ReadManifest(flags.Manifest)
	if err != nil {
		return err
	}

	if err := clearDirectoryIfNotEmpty(flags.OutputPath, flags.ForceClean); err != nil {
		return err
	}

	generator := generation.NewGenerator(flags.PackageName, flags.HostPackage, flags.OutputPath, logger)
	generator.RegisterManifest(manifest)

	return generator.Generate()
}

func clearDirectoryIfNotEmpty(path string, silent bool) error {
	directory, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer directory.Close()

	_, err = directory.Readdirnames(1)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	var response string
	if !silent {
		fmt.Print("Output directory is not empty. Continuation will remove all previously generated files. Proceed? [Y/n]")
		fmt.Scan(&response)
		if strings.ToUpper(response) != "Y" {
			return errors.New("explicit agreement was not given")
		}
	}

	fmt.Println("Cleaning output directory.")
	return os.RemoveAll(path)
}
