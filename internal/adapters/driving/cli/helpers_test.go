package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/mplemon/internal/adapters/driven/config/jwt"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/diff"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/xmldoc"
	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
	"github.com/custodia-labs/mplemon/internal/core/services"
)

const testProject = "mem://localhost/ws/app"

// testFiles backs every service set up by setupTestServices.
var testFiles *memory.FileStore

type stubKeys struct{}

func (stubKeys) Generate() (domain.KeyPair, error) {
	return domain.KeyPair{Public: "PUBKEY", Private: "PRIVKEY"}, nil
}

type stubTemplates struct{}

func (stubTemplates) Load(name string) (string, error) {
	return "package PACKAGE;\n// " + name + "\n", nil
}

func (stubTemplates) Reload() {}

var (
	_ driven.KeyGenerator  = stubKeys{}
	_ driven.TemplateStore = stubTemplates{}
)

// setupTestServices wires real services over in-memory storage.
func setupTestServices() func() {
	testFiles = memory.NewFileStore()
	merge := services.NewMergeService(
		xmldoc.NewStore(testFiles),
		xmldoc.NewImporter(),
		diff.NewDiffer(diff.DefaultContext),
		nil,
	)
	scaffold := services.NewScaffoldService(merge, testFiles, stubTemplates{}, stubKeys{}, jwt.NewStore(testFiles), nil)
	settings := services.NewSettingsService(memory.NewConfigStore())
	SetServices(merge, scaffold, settings)

	return func() {
		SetServices(nil, nil, nil)
		testFiles = nil
	}
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
