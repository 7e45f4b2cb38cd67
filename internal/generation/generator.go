package generation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"hostbind/internal/metadata"
)

type Generator struct {
	Classes     []metadata.Class
	PackageName string
	HostPackage string
	OutputPath  string
	logger      *slog.Logger
}

func NewGenerator(packageName string, hostPackage string, outputPath string, logger *slog.Logger) Generator {
	return Generator{
		make([]metadata.Class, 0),
		packageName,
		hostPackage,
		outputPath,
		logger,
	}
}

func (generator *Generator) RegisterManifest(manifest metadata.Manifest) {
	for _, class := range manifest.Classes {
		generator.RegisterClass(class)
	}
}

func (generator *Generator) RegisterClass(class metadata.Class) {
	generator.Classes = append(generator.Classes, class)
}

// Generate renders one file per registered class under the output path.
// Classes whose names sanitize to the same file are rejected, never
// silently overwritten.
func (generator *Generator) Generate() error {
	if err := os.MkdirAll(generator.OutputPath, os.ModePerm); err != nil {
		return err
	}

	generated := make(map[string]string)
	for _, class := range generator.Classes {
		if err := generator.generateClass(class, generated); err != nil {
			return fmt.Errorf("class %q: %w", class.Name, err)
		}
	}

	return nil
}

func (generator *Generator) generateClass(class metadata.Class, generated map[string]string) error {
	if class.Name == "" {
		return fmt.Errorf("class name is empty")
	}

	typeName := exportedName(class.Name)
	fileName := strings.ToLower(typeName)
	if previous, taken := generated[fileName]; taken {
		return fmt.Errorf("%w: file %s.go is already generated for class %q", ErrClassCollision, fileName, previous)
	}
	generated[fileName] = class.Name

	statements, err := EmitAll(generator.HostPackage, class.Properties)
	if err != nil {
		return err
	}

	file := jen.NewFile(generator.PackageName)
	file.HeaderComment("Code generated by hostbind. DO NOT EDIT.")

	file.Func().
		Id(fmt.Sprintf("New%sClass", typeName)).
		Params().
		Op("*").Qual(generator.HostPackage, "Class").
		Block(
			jen.Id("class").Op(":=").Qual(generator.HostPackage, "NewClass").Call(jen.Lit(class.Name)),
			jen.Id(fmt.Sprintf("bind%sProperties", typeName)).Call(jen.Id("class")),
			jen.Return(jen.Id("class")),
		).
		Line()

	file.Func().
		Id(fmt.Sprintf("bind%sProperties", typeName)).
		Params(jen.Id("class").Op("*").Qual(generator.HostPackage, "Class")).
		BlockFunc(func(group *jen.Group) {
			for _, statement := range statements {
				group.Add(statement)
			}
		})

	outputFile := filepath.Join(generator.OutputPath, fmt.Sprintf("%s.go", fileName))
	generator.logger.Info("Generating class bindings", "class", class.Name, "properties", len(class.Properties), "file", outputFile)

	return file.Save(outputFile)
}

// exportedName derives the name used in generated function names from a
// class name.
func exportedName(name string) string {
	runes := []rune(SanitizeIdentifier(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
