package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Merge a YAML recipe into a pom",
	Long: `Merges the properties, dependencies and plugins listed in a YAML recipe
into a pom in a single load-merge-save cycle. Entries already present are
left untouched. Use "-f -" to read the recipe from stdin.

Example recipe:
  properties:
    maven.compiler.source: "11"
  dependencies:
    - groupId: org.x
      artifactId: lib
      version: "1.0"
      scope: test
  plugins:
    - groupId: org.apache.maven.plugins
      artifactId: maven-war-plugin
      version: 3.3.1
      configuration: |
        <configuration><failOnMissingWebXml>false</failOnMissingWebXml></configuration>`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

// Flags for apply.
var (
	applyRecipe string
	applyFile   string
)

func init() {
	applyCmd.Flags().StringVarP(&applyRecipe, "recipe", "f", "", "Recipe file, or - for stdin")
	applyCmd.Flags().StringVar(&applyFile, "file", domain.POMFile, "Pom to merge into, relative to the project")
	_ = applyCmd.MarkFlagRequired("recipe")
	rootCmd.AddCommand(applyCmd)
}

// recipe is the YAML document accepted by apply.
type recipe struct {
	Properties   propertyList       `yaml:"properties"`
	Dependencies []recipeDependency `yaml:"dependencies"`
	Plugins      []recipePlugin     `yaml:"plugins"`
}

type recipeDependency struct {
	GroupID    string `yaml:"groupId"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version"`
	Scope      string `yaml:"scope"`
}

type recipePlugin struct {
	GroupID       string `yaml:"groupId"`
	ArtifactID    string `yaml:"artifactId"`
	Version       string `yaml:"version"`
	Configuration string `yaml:"configuration"`
}

// propertyList keeps mapping order, which becomes insertion order.
type propertyList []domain.Property

// UnmarshalYAML decodes a mapping of scalar values.
func (l *propertyList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: property %s must be a scalar", val.Line, key.Value)
		}
		*l = append(*l, domain.Property{Name: key.Value, Value: val.Value})
	}
	return nil
}

// batches converts the recipe into merge batches, skipping empty sections.
func (r *recipe) batches() []domain.Batch {
	var out []domain.Batch
	if len(r.Properties) > 0 {
		out = append(out, domain.PropertyBatch(r.Properties...))
	}
	if len(r.Dependencies) > 0 {
		deps := make([]domain.Dependency, 0, len(r.Dependencies))
		for _, d := range r.Dependencies {
			deps = append(deps, domain.Dependency(d))
		}
		out = append(out, domain.DependencyBatch(deps...))
	}
	if len(r.Plugins) > 0 {
		plugins := make([]domain.Plugin, 0, len(r.Plugins))
		for _, p := range r.Plugins {
			plugins = append(plugins, domain.Plugin(p))
		}
		out = append(out, domain.PluginBatch(plugins...))
	}
	return out
}

// parseRecipe decodes a recipe, rejecting unknown fields.
func parseRecipe(r io.Reader) (*recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rec recipe
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty recipe", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: recipe: %w", domain.ErrInvalidInput, err)
	}
	return &rec, nil
}

func runApply(cmd *cobra.Command, _ []string) error {
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	in := cmd.InOrStdin()
	if applyRecipe != "-" {
		f, err := os.Open(applyRecipe)
		if err != nil {
			return fmt.Errorf("open recipe: %w", err)
		}
		defer f.Close()
		in = f
	}

	rec, err := parseRecipe(in)
	if err != nil {
		return err
	}
	batches := rec.batches()
	if len(batches) == 0 {
		cmd.Println("Recipe is empty, nothing to do.")
		return nil
	}

	report, err := mergeService.Apply(cmd.Context(), domain.MergeRequest{
		Locator:    locate(applyFile),
		Batches:    batches,
		RunOptions: runOptions(),
	})
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	printMergeReport(cmd, stylesFor(cmd.OutOrStdout()), report)
	return nil
}
