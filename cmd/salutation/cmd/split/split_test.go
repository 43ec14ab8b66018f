package split

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/pkg/names"
	"github.com/productioncity/salutation/pkg/reconcile"
)

func execute(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()

	// The command expects the core group of the root command.
	root := &cobra.Command{Use: "salutation"}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	root.AddCommand(NewCommand(app))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"split"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSplit(t *testing.T) {
	app := &appcontext.Mock{Format: "json"}

	out, err := execute(t, app, "Nguyen", "Van", "An", "--locale", "vi_VN")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	var got names.Parts
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := names.Parts{Given: "An", Family: "Nguyen", Salutation: "An"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitUsesConfiguredPolicy(t *testing.T) {
	app := &appcontext.Mock{
		Format: "json",
		PolicyFunc: func() (*reconcile.Policy, error) {
			return reconcile.New(reconcile.WithDefaultLocale("ja_JP"))
		},
	}

	out, err := execute(t, app, "Yamada Taro")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	var got names.Parts
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Family != "Yamada" || got.Given != "Taro" {
		t.Errorf("default locale not applied: %+v", got)
	}
}

func TestSplitRejectsBlankName(t *testing.T) {
	if _, err := execute(t, &appcontext.Mock{Format: "json"}, "   "); err == nil {
		t.Error("expected a blank name to fail")
	}
}
