package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/internal/store/memory"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/fields"
	"github.com/productioncity/salutation/pkg/logging"
	"github.com/productioncity/salutation/pkg/names"
)

func newTestApp(t *testing.T, mutate ...func(*Config)) *App {
	t.Helper()

	config := &Config{
		Store:            "memory",
		DefaultLocale:    "en_US",
		OverrideStrategy: "differs",
		MetricsEnabled:   true,
		LogOutput:        "discard",
	}
	for _, m := range mutate {
		m(config)
	}

	app, err := New("1.0.0", "abc123", "2026-01-01", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
		WithStore(memory.New()),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	root := app.createRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func runJSON[T any](t *testing.T, app *App, args ...string) T {
	t.Helper()

	out, err := run(t, app, append(args, "-o", "json")...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("%v: output is not JSON: %v\n%s", args, err, out)
	}
	return v
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2026-01-01" {
		t.Errorf("Date() = %s, want 2026-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Service_Singleton verifies that Service() returns the same instance.
func TestApp_Service_Singleton(t *testing.T) {
	app := newTestApp(t)

	svc1, err := app.Service(context.Background())
	if err != nil {
		t.Fatalf("Service() failed: %v", err)
	}
	svc2, err := app.Service(context.Background())
	if err != nil {
		t.Fatalf("Service() failed on second call: %v", err)
	}
	if svc1 != svc2 {
		t.Error("Service() returned different instances")
	}
}

// TestApp_Service_BadStrategy surfaces configuration errors.
func TestApp_Service_BadStrategy(t *testing.T) {
	app := newTestApp(t, func(c *Config) { c.OverrideStrategy = "sometimes" })

	if _, err := app.Service(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
	if _, err := app.Policy(); err == nil {
		t.Fatal("expected Policy() to reject an unknown strategy")
	}
}

// TestApp_ServerConfig maps the configuration onto the server.
func TestApp_ServerConfig(t *testing.T) {
	app := newTestApp(t, func(c *Config) {
		c.Addr = "127.0.0.1:9000"
		c.MetricsEnabled = false
	})

	cfg := app.ServerConfig()
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.MetricsEnabled {
		t.Error("metrics should be disabled")
	}
	if cfg.Gatherer == nil {
		t.Error("Gatherer should be the app registry")
	}
	if cfg.PathPrefix != "/api/v1" {
		t.Errorf("PathPrefix = %q", cfg.PathPrefix)
	}
}

// TestApp_ShutdownWithoutStore is a no-op.
func TestApp_ShutdownWithoutStore(t *testing.T) {
	app := &App{config: &Config{}}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

func TestSplitCommand(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		args []string
		want names.Parts
	}{
		{[]string{"split", "Ada", "Lovelace"}, names.Parts{Given: "Ada", Family: "Lovelace", Salutation: "Ada"}},
		{[]string{"split", "Kim Minjun", "--locale", "ko_KR"}, names.Parts{Given: "Minjun", Family: "Kim", Salutation: "Minjun"}},
		{[]string{"split", "Wang Wei", "--locale", "zh-CN", "--title", "Dr."}, names.Parts{Given: "Wei", Family: "Wang", Salutation: "Dr. Wang"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got := runJSON[names.Parts](t, app, tt.args...)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSplitCommand_DefaultLocale(t *testing.T) {
	app := newTestApp(t)

	got := runJSON[names.Parts](t, app, "split", "Kim Minjun", "--default-locale", "ko_KR")
	if got.Family != "Kim" {
		t.Errorf("default locale not applied: %+v", got)
	}
}

func TestSplitCommand_TableOutput(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "split", "Ada Lovelace", "-o", "table")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if !strings.Contains(out, "Lovelace") {
		t.Errorf("table output missing family name:\n%s", out)
	}
}

func TestContactsLifecycle(t *testing.T) {
	app := newTestApp(t)

	created := runJSON[contacts.Contact](t, app,
		"contacts", "create", "--category", "person", "--name", "Ada Lovelace")
	if created.GivenName != "Ada" || created.FamilyName != "Lovelace" || created.Salutation != "Ada" {
		t.Fatalf("unexpected derived parts: %+v", created)
	}

	pinned := runJSON[contacts.Contact](t, app,
		"contacts", "update", created.ID, "--salutation", "Countess")
	if pinned.Salutation != "Countess" || !pinned.SalutationManual {
		t.Fatalf("salutation should be pinned: %+v", pinned)
	}

	renamed := runJSON[contacts.Contact](t, app,
		"contacts", "update", created.ID, "--name", "Ada King")
	if renamed.FamilyName != "King" {
		t.Errorf("family should follow the name: %+v", renamed)
	}
	if renamed.Salutation != "Countess" {
		t.Errorf("pinned salutation changed: %+v", renamed)
	}

	reset := runJSON[[]contacts.Contact](t, app, "reset", created.ID)
	if len(reset) != 1 || reset[0].Salutation != "Ada" || reset[0].SalutationManual {
		t.Errorf("reset should re-derive and unpin: %+v", reset)
	}

	got := runJSON[contacts.Contact](t, app, "contacts", "get", created.ID)
	if got.ID != created.ID {
		t.Errorf("get returned %q", got.ID)
	}

	out, err := run(t, app, "contacts", "display", created.ID)
	if err != nil {
		t.Fatalf("display failed: %v", err)
	}
	if strings.TrimSpace(out) != "Ada King" {
		t.Errorf("display = %q", out)
	}

	if _, err := run(t, app, "contacts", "delete", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := run(t, app, "contacts", "get", created.ID); err == nil {
		t.Error("expected get of a deleted contact to fail")
	}
}

func TestContactsUpdate_PinFlags(t *testing.T) {
	app := newTestApp(t)

	created := runJSON[contacts.Contact](t, app,
		"contacts", "create", "--category", "person", "--name", "Ada Lovelace")

	pinned := runJSON[contacts.Contact](t, app, "contacts", "update", created.ID, "--pin", "given,family")
	if !pinned.GivenManual || !pinned.FamilyManual {
		t.Errorf("expected given and family pinned: %+v", pinned)
	}

	if _, err := run(t, app, "contacts", "update", created.ID, "--pin", "given", "--unpin", "given"); err == nil {
		t.Error("expected pin and unpin of one field to fail")
	}
	if _, err := run(t, app, "contacts", "update", created.ID); err == nil {
		t.Error("expected an update without changes to fail")
	}
}

func TestContactsCreate_Validation(t *testing.T) {
	app := newTestApp(t)

	if _, err := run(t, app, "contacts", "create"); err == nil {
		t.Error("expected create without fields to fail")
	}
	if _, err := run(t, app, "contacts", "create", "--category", "robot", "--name", "R2"); err == nil {
		t.Error("expected an unknown category to fail")
	}

	org := runJSON[contacts.Contact](t, app, "contacts", "create", "--name", "Acme Pty Ltd")
	if org.Category != contacts.Organization {
		t.Errorf("category should default to organization, got %q", org.Category)
	}
	if org.GivenName != "" {
		t.Errorf("organizations get no name parts: %+v", org)
	}
}

func TestContactsImportAndList(t *testing.T) {
	app := newTestApp(t)

	path := filepath.Join(t.TempDir(), "contacts.yaml")
	content := `- category: person
  name: Ada Lovelace
- category: person
  name: Kim Minjun
  locale: ko_KR
- category: company
  name: Acme Pty Ltd
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing import file: %v", err)
	}

	imported := runJSON[[]contacts.Contact](t, app, "contacts", "import", path)
	if len(imported) != 3 {
		t.Fatalf("imported %d contacts, want 3", len(imported))
	}
	if imported[1].FamilyName != "Kim" {
		t.Errorf("ko_KR contact: %+v", imported[1])
	}
	if imported[2].Category != contacts.Organization {
		t.Errorf("company alias: %+v", imported[2])
	}

	people := runJSON[[]contacts.Contact](t, app, "contacts", "list", "--category", "person")
	if len(people) != 2 {
		t.Errorf("listed %d people, want 2", len(people))
	}

	all := runJSON[[]contacts.Contact](t, app, "contacts", "list")
	if len(all) != 3 {
		t.Errorf("listed %d contacts, want 3", len(all))
	}
}

func TestContactsImport_BadFile(t *testing.T) {
	app := newTestApp(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("- nickname: Ada\n"), 0o600); err != nil {
		t.Fatalf("writing import file: %v", err)
	}
	if _, err := run(t, app, "contacts", "import", path); err == nil {
		t.Error("expected unknown fields to be rejected")
	}
	if _, err := run(t, app, "contacts", "import", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected a missing file to fail")
	}
}

func TestBackfillCommand(t *testing.T) {
	app := newTestApp(t)

	runJSON[contacts.Contact](t, app, "contacts", "create", "--category", "person", "--name", "Ada Lovelace")

	report := runJSON[salutation.BackfillReport](t, app, "backfill")
	if report.Processed != 1 || report.Failed != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestFieldsCommands(t *testing.T) {
	app := newTestApp(t)

	merge := runJSON[[]fields.Field](t, app, "fields", "merge")
	found := false
	for _, f := range merge {
		if f.Name == "name_salutation" {
			found = true
		}
	}
	if !found {
		t.Errorf("merge fields missing name_salutation: %+v", merge)
	}

	if _, err := run(t, app, "fields", "recipient"); err == nil {
		t.Error("expected recipient fields to be unavailable without the campaign model")
	}

	withHost := newTestApp(t, func(c *Config) { c.HostModels = []string{fields.CampaignModel} })
	recipient := runJSON[[]fields.Field](t, withHost, "fields", "recipient")
	if len(recipient) != 3 {
		t.Errorf("recipient fields = %+v", recipient)
	}
}

func TestVersionCommand(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "salutation 1.0.0" {
		t.Errorf("version output = %q", out)
	}

	out, err = run(t, app, "version", "-v")
	if err != nil {
		t.Fatalf("version -v failed: %v", err)
	}
	if !strings.Contains(out, "abc123") {
		t.Errorf("verbose version missing commit: %q", out)
	}
}

func TestInvalidFormat(t *testing.T) {
	app := newTestApp(t)

	if _, err := run(t, app, "split", "Ada", "-o", "csv"); err == nil {
		t.Error("expected an invalid format to fail")
	}
}
